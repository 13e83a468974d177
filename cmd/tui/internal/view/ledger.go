package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

type ledgerState int

const (
	ledgerStateList ledgerState = iota
	ledgerStateIncome
)

var ledgerTypeFilters = []*ledger.Type{nil, new(ledger.TypeIncome), new(ledger.TypePayout)}

// txItem wraps a ledger transaction to implement list.Item.
type txItem struct {
	tx *ledger.Transaction
}

func (i txItem) Title() string {
	status := lipgloss.NewStyle().Faint(true).Render(fmt.Sprintf("[%s]", i.tx.Status))

	amount := FormatBirr(i.tx.Amount)
	if i.tx.Type == ledger.TypePayout {
		amount = "-" + amount
	}

	return fmt.Sprintf("%s  %-7s %14s  %s  %s", FormatDate(i.tx.Date), i.tx.Type, amount, status, i.tx.From)
}

func (i txItem) Description() string {
	if i.tx.Commission > 0 {
		return fmt.Sprintf("%s (commission %s)", i.tx.Description, FormatBirr(i.tx.Commission))
	}

	return i.tx.Description
}

func (i txItem) FilterValue() string { return i.tx.From + " " + i.tx.Description }

type LedgerModel struct {
	CommonModel
	accountService *account.Service

	state   ledgerState
	list    list.Model
	form    *huh.Form
	summary account.Summary

	typeFilterIdx int
	loading       bool
	status        string
}

func NewLedgerModel(svc *account.Service) LedgerModel {
	l := list.New([]list.Item{}, txItemDelegate{}, 0, 0)
	l.Title = "Ledger"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(true)

	return LedgerModel{
		accountService: svc,
		list:           l,
		loading:        true,
	}
}

func (m LedgerModel) Title() string { return "Ledger" }

func (m LedgerModel) ShortHelp() string {
	if m.state == ledgerStateIncome {
		return "Esc: cancel | Enter/Tab: navigate form"
	}

	return "Esc: back | t: type filter | i: record income | /: filter"
}

func (m LedgerModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m LedgerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadLedgerMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.summary = msg.summary
		m.refreshListItems(msg.txs)

		if len(msg.txs) == 0 {
			m.status = "No transactions found."
		}

		return m, nil

	case incomeSavedMsg:
		m.state = ledgerStateList
		m.form = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
			return m, nil
		}

		m.status = fmt.Sprintf("Recorded %s from %s.", FormatBirr(msg.tx.Amount), msg.tx.From)

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width-4, msg.Height-10)
		return m, nil
	}

	switch m.state {
	case ledgerStateList:
		return m.updateList(msg)
	case ledgerStateIncome:
		return m.updateIncome(msg)
	}

	return m, nil
}

func (m LedgerModel) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "t":
			m.typeFilterIdx = (m.typeFilterIdx + 1) % len(ledgerTypeFilters)
			m.loading = true

			return m, m.loadCmd()
		case "i":
			return m.startIncome()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m LedgerModel) startIncome() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("helper").Title("Helper ID").Validate(validID),
			huh.NewInput().Key("from").Title("Paid by").Validate(notBlank),
			huh.NewInput().Key("amount").Title("Amount (ETB)").Validate(validID),
			huh.NewInput().Key("date").Title("Date").Placeholder("YYYY-MM-DD").Validate(validDate),
			huh.NewSelect[string]().
				Key("status").
				Title("Status").
				Options(
					huh.NewOption("Pending", string(ledger.StatusPending)),
					huh.NewOption("Completed", string(ledger.StatusCompleted)),
				),
			huh.NewInput().Key("description").Title("Description"),
		),
	).WithWidth(50).WithShowHelp(false)

	m.state = ledgerStateIncome

	return m, m.form.Init()
}

func (m LedgerModel) updateIncome(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = ledgerStateList
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.recordIncomeCmd()
}

func (m LedgerModel) View() string {
	switch m.state {
	case ledgerStateList:
		if m.loading {
			return lipgloss.NewStyle().Padding(2).Render("Loading ledger...")
		}

		label := "All"
		if f := ledgerTypeFilters[m.typeFilterIdx]; f != nil {
			label = string(*f)
		}

		header := fmt.Sprintf(
			"Income %s | Commission %s | Payouts %s | Balance %s\nFilter: [t] Type: %s",
			FormatBirr(m.summary.TotalIncome),
			FormatBirr(m.summary.TotalCommission),
			FormatBirr(m.summary.TotalPayouts),
			activeStyle(FormatBirr(m.summary.PlatformBalance)),
			activeStyle(label),
		)

		statusLine := ""
		if m.status != "" {
			statusLine = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n"
		}

		return lipgloss.NewStyle().Padding(1).Render(header + "\n\n" + statusLine + m.list.View())

	case ledgerStateIncome:
		if m.form == nil {
			return ""
		}

		return lipgloss.NewStyle().Padding(1).Render("Record Income\n\n" + m.form.View())
	}

	return ""
}

func (m *LedgerModel) refreshListItems(txs []*ledger.Transaction) {
	items := make([]list.Item, len(txs))
	for i, tx := range txs {
		items[i] = txItem{tx: tx}
	}

	m.list.SetItems(items)
}

// Messages

type loadLedgerMsg struct {
	txs     []*ledger.Transaction
	summary account.Summary
	err     error
}

func (m LedgerModel) loadCmd() tea.Cmd {
	filter := account.TransactionFilter{Type: ledgerTypeFilters[m.typeFilterIdx]}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		txs, err := m.accountService.Transactions(ctx, filter)
		if err != nil {
			return loadLedgerMsg{err: err}
		}

		summary, err := m.accountService.Summary(ctx)

		return loadLedgerMsg{txs: txs, summary: summary, err: err}
	}
}

type incomeSavedMsg struct {
	tx  *ledger.Transaction
	err error
}

func (m LedgerModel) recordIncomeCmd() tea.Cmd {
	helperID, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("helper")))
	amount, _ := strconv.ParseInt(strings.TrimSpace(m.form.GetString("amount")), 10, 64)
	date, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))

	params := account.IncomeParams{
		HelperID:    helperID,
		From:        strings.TrimSpace(m.form.GetString("from")),
		Amount:      amount,
		Date:        date,
		Status:      ledger.Status(m.form.GetString("status")),
		Description: m.form.GetString("description"),
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		tx, err := m.accountService.RecordIncome(ctx, params)

		return incomeSavedMsg{tx: tx, err: err}
	}
}

// txItemDelegate renders items in the list.
type txItemDelegate struct{}

func (d txItemDelegate) Height() int                             { return 2 }
func (d txItemDelegate) Spacing() int                            { return 0 }
func (d txItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d txItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(txItem)
	if !ok {
		return
	}

	title := i.Title()
	if index == m.Index() {
		title = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Render("> " + title)
	}

	fmt.Fprintf(w, "  %s\n", title)
	fmt.Fprintf(w, "    %s\n", lipgloss.NewStyle().Faint(true).Render(i.Description()))
}
