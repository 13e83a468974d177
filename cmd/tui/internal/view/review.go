package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/review"
)

// ReviewModel walks the pending reviews one at a time.
type ReviewModel struct {
	CommonModel
	reviewService *review.Service

	queue   []*review.Review
	current *review.Review

	status     string
	loading    bool
	totalCount int
	resolved   int
	flagged    int
}

func NewReviewModel(svc *review.Service) ReviewModel {
	return ReviewModel{
		reviewService: svc,
		loading:       true,
		status:        "Loading moderation queue...",
	}
}

func (m ReviewModel) Title() string { return "Moderate Reviews" }

func (m ReviewModel) ShortHelp() string {
	return "r: resolve | f: flag | s: skip | Esc: back"
}

func (m ReviewModel) Init() tea.Cmd {
	return m.loadPendingCmd()
}

func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			if m.current != nil {
				return m, m.moderateCmd(review.StatusResolved)
			}
		case "f":
			if m.current != nil {
				return m, m.moderateCmd(review.StatusFlagged)
			}
		case "s":
			if m.current != nil {
				m.next()
			}
		}

	case loadPendingMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error loading reviews: %v", msg.err)
			break
		}

		m.queue = msg.reviews
		m.totalCount = len(m.queue)
		m.next()

	case moderatedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			break
		}

		if msg.to == review.StatusFlagged {
			m.flagged++
		} else {
			m.resolved++
		}

		m.next()
	}

	return m, nil
}

func (m *ReviewModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = fmt.Sprintf("Queue empty. Resolved %d, flagged %d.", m.resolved, m.flagged)

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = fmt.Sprintf("Reviewing %d/%d", m.totalCount-len(m.queue), m.totalCount)
}

func (m ReviewModel) View() string {
	if m.loading || m.current == nil {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\n(Esc to back)")
	}

	r := m.current
	stars := strings.Repeat("★", r.Rating) + strings.Repeat("☆", 5-r.Rating)

	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Width(60).
		Render(fmt.Sprintf(
			"Review #%d  |  %s\nHousehold %d about helper %d  |  %s\n\n%s",
			r.ID, activeStyle(stars), r.HouseholdID, r.HelperID, FormatDate(r.Date), r.Comment,
		))

	return lipgloss.NewStyle().Padding(2).Render(
		fmt.Sprintf("%s\n\n%s\n\n(r: resolve, f: flag, s: skip, Esc: back)", m.status, card),
	)
}

type loadPendingMsg struct {
	reviews []*review.Review
	err     error
}

func (m ReviewModel) loadPendingCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		reviews, err := m.reviewService.List(ctx, new(review.StatusPending))

		return loadPendingMsg{reviews: reviews, err: err}
	}
}

type moderatedMsg struct {
	to  review.Status
	err error
}

func (m ReviewModel) moderateCmd(to review.Status) tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		var err error
		if to == review.StatusFlagged {
			_, err = m.reviewService.Flag(ctx, id)
		} else {
			_, err = m.reviewService.Resolve(ctx, id)
		}

		return moderatedMsg{to: to, err: err}
	}
}
