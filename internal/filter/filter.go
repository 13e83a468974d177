// Package filter derives read-only views over entity slices. Every function
// returns a new slice in the original relative order and never touches its input.
package filter

import (
	"strings"

	"golang.org/x/text/cases"
)

// Stated is implemented by entities carrying a status.
type Stated[S comparable] interface {
	CurrentStatus() S
}

// Kinded is implemented by entities carrying a type tag.
type Kinded[K comparable] interface {
	Kind() K
}

// Sent is implemented by entities that have a sender.
type Sent interface {
	SentBy() string
}

func Where[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))

	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}

	return out
}

func ByStatus[T Stated[S], S comparable](items []T, status S) []T {
	return Where(items, func(item T) bool { return item.CurrentStatus() == status })
}

func ByType[T Kinded[K], K comparable](items []T, kind K) []T {
	return Where(items, func(item T) bool { return item.Kind() == kind })
}

// BySenderSubstring matches needle anywhere in the sender name, ignoring case.
// An empty needle keeps everything.
func BySenderSubstring[T Sent](items []T, needle string) []T {
	if needle == "" {
		return Where(items, func(T) bool { return true })
	}

	fold := cases.Fold()
	folded := fold.String(needle)

	return Where(items, func(item T) bool {
		return strings.Contains(fold.String(item.SentBy()), folded)
	})
}
