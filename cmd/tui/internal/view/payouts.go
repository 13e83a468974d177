package view

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
)

// PayoutModel settles helper accounts with a pending balance, one at a time.
type PayoutModel struct {
	CommonModel
	accountService *account.Service

	queue   []*account.HelperAccount
	current *account.HelperAccount

	loading    bool
	status     string
	totalCount int
	paid       int64
}

func NewPayoutModel(svc *account.Service) PayoutModel {
	return PayoutModel{
		accountService: svc,
		loading:        true,
	}
}

func (m PayoutModel) Title() string { return "Process Payouts" }

func (m PayoutModel) ShortHelp() string {
	return "Enter: pay | s: skip | Esc: back"
}

func (m PayoutModel) Init() tea.Cmd {
	return m.loadDueCmd()
}

func (m PayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "enter":
			if m.current != nil {
				return m, m.payCmd()
			}
		case "s":
			if m.current != nil {
				m.next()
			}
		}

	case loadDueMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.queue = msg.accounts
		m.totalCount = len(m.queue)
		m.next()

	case payoutMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error paying out: %v", msg.err)
			break
		}

		m.paid += msg.payout.Transaction.Amount
		m.next()
	}

	return m, nil
}

func (m *PayoutModel) next() {
	if len(m.queue) == 0 {
		m.current = nil
		m.status = fmt.Sprintf("All done! Paid out %s.", FormatBirr(m.paid))

		return
	}

	m.current = m.queue[0]
	m.queue = m.queue[1:]
	m.status = ""
}

func (m PayoutModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading accounts...")
	}

	if m.current == nil {
		if m.totalCount == 0 {
			return lipgloss.NewStyle().Padding(2).Render("No payouts due.\n\n(Esc to back)")
		}

		return lipgloss.NewStyle().Padding(2).Render(okStyle(m.status) + "\n\n(Esc to back)")
	}

	a := m.current
	info := fmt.Sprintf(
		"Helper: %s (#%d)\nBank:   %s\nEarned: %s\nLast payout: %s\n\nPending: %s",
		a.Name, a.HelperID, a.BankAccount,
		FormatBirr(a.TotalEarnings), FormatDate(a.LastPayout),
		activeStyle(FormatBirr(a.PendingPayout)),
	)

	content := fmt.Sprintf("Payout Due (%d remaining)\n\n%s\n\n(Enter to pay, 's' to skip, Esc to back)", len(m.queue)+1, info)
	if m.status != "" {
		content = errorStyle(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(2).Render(content)
}

type loadDueMsg struct {
	accounts []*account.HelperAccount
	err      error
}

func (m PayoutModel) loadDueCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		accounts, err := m.accountService.List(ctx, new(account.StatusActive))
		if err != nil {
			return loadDueMsg{err: err}
		}

		due := filter.Where(accounts, func(a *account.HelperAccount) bool { return a.PendingPayout > 0 })

		return loadDueMsg{accounts: due}
	}
}

type payoutMsg struct {
	payout *account.Payout
	err    error
}

func (m PayoutModel) payCmd() tea.Cmd {
	id := m.current.ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		p, err := m.accountService.ProcessPayout(ctx, id)

		return payoutMsg{payout: p, err: err}
	}
}
