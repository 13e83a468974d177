// Package status implements table-driven state machines for entity status fields.
package status

import (
	"slices"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

// Machine is an exhaustive transition table. Every state must appear as a key,
// terminal states map to an empty slice.
type Machine[S ~string] struct {
	entity string
	next   map[S][]S
}

func NewMachine[S ~string](entity string, next map[S][]S) Machine[S] {
	return Machine[S]{entity: entity, next: next}
}

// Valid reports whether s is a known state.
func (m Machine[S]) Valid(s S) bool {
	_, ok := m.next[s]
	return ok
}

func (m Machine[S]) Can(from, to S) bool {
	return slices.Contains(m.next[from], to)
}

func (m Machine[S]) Terminal(s S) bool {
	next, ok := m.next[s]
	return ok && len(next) == 0
}

// Transition returns nil when from -> to is a listed edge.
func (m Machine[S]) Transition(from, to S) error {
	if !m.Can(from, to) {
		return &errs.TransitionError{Entity: m.entity, From: string(from), To: string(to)}
	}

	return nil
}

// States lists the known states in no particular order.
func (m Machine[S]) States() []S {
	out := make([]S, 0, len(m.next))
	for s := range m.next {
		out = append(out, s)
	}

	return out
}
