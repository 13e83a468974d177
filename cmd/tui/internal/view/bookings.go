package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/booking"
)

type bookingState int

const (
	bookingStateBrowse bookingState = iota
	bookingStateCreate
)

var bookingStatusFilters = []*booking.Status{
	nil,
	new(booking.StatusPending),
	new(booking.StatusApproved),
	new(booking.StatusCompleted),
}

type BookingsModel struct {
	CommonModel
	bookingService *booking.Service

	state    bookingState
	table    table.Model
	bookings []*booking.Booking
	form     *huh.Form

	statusFilterIdx int

	loading bool
	err     error
	status  string
}

func NewBookingsModel(svc *booking.Service) BookingsModel {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Household", Width: 10},
		{Title: "Helper", Width: 7},
		{Title: "Service", Width: 12},
		{Title: "Start", Width: 11},
		{Title: "End", Width: 11},
		{Title: "Location", Width: 14},
		{Title: "Status", Width: 10},
	}

	return BookingsModel{
		bookingService: svc,
		table:          newTable(columns),
		loading:        true,
	}
}

// newTable builds a focused table with the console's header and selection styles.
func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m BookingsModel) Title() string { return "Bookings" }

func (m BookingsModel) ShortHelp() string {
	if m.state == bookingStateCreate {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | a: approve | c: complete | n: new | s: status filter | r: refresh"
}

func (m BookingsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BookingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBookingsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.bookings = msg.bookings
		m.refreshTable()

		return m, nil

	case bookingSavedMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = bookingStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case bookingStateBrowse:
		return m.updateBrowse(msg)
	case bookingStateCreate:
		return m.updateCreate(msg)
	}

	return m, nil
}

func (m BookingsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % len(bookingStatusFilters)
			return m, m.loadCmd()
		case "a":
			return m, m.transitionCmd(booking.StatusApproved)
		case "c":
			return m, m.transitionCmd(booking.StatusCompleted)
		case "n":
			return m.enterCreateMode()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BookingsModel) enterCreateMode() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("household").Title("Household ID").Validate(validID),
			huh.NewInput().Key("helper").Title("Helper ID").Validate(validID),
			huh.NewInput().Key("service").Title("Service").Placeholder(booking.DefaultServiceType),
			huh.NewInput().Key("start").Title("Start date").Placeholder("YYYY-MM-DD").Validate(validDate),
			huh.NewInput().Key("end").Title("End date").Placeholder("YYYY-MM-DD").Validate(validDate),
			huh.NewInput().Key("location").Title("Location"),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = bookingStateCreate
	m.table.Blur()

	return m, m.form.Init()
}

func (m BookingsModel) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = bookingStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.createCmd()
}

func (m BookingsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading bookings...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	label := "All"
	if f := bookingStatusFilters[m.statusFilterIdx]; f != nil {
		label = string(*f)
	}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(label))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == bookingStateCreate && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("New Booking\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BookingsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.bookings))
	for _, b := range m.bookings {
		rows = append(rows, table.Row{
			strconv.Itoa(b.ID),
			strconv.Itoa(b.HouseholdID),
			strconv.Itoa(b.HelperID),
			b.ServiceType,
			FormatDate(b.StartDate),
			FormatDate(b.EndDate),
			b.Location,
			string(b.Status),
		})
	}

	m.table.SetRows(rows)
}

func (m BookingsModel) selected() *booking.Booking {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.bookings) {
		return nil
	}

	return m.bookings[idx]
}

// Form validators shared by the console forms.

func notBlank(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be empty")
	}

	return nil
}

func validID(s string) error {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}

	return nil
}

func validDate(s string) error {
	if _, err := time.Parse(time.DateOnly, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}

	return nil
}

// Messages

type loadBookingsMsg struct {
	bookings []*booking.Booking
	err      error
}

func (m BookingsModel) loadCmd() tea.Cmd {
	filter := booking.ListFilter{Status: bookingStatusFilters[m.statusFilterIdx]}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		bookings, err := m.bookingService.List(ctx, filter)

		return loadBookingsMsg{bookings: bookings, err: err}
	}
}

type bookingSavedMsg struct {
	status string
	err    error
}

func (m BookingsModel) transitionCmd(to booking.Status) tea.Cmd {
	b := m.selected()
	if b == nil {
		return nil
	}

	id := b.ID

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		if _, err := m.bookingService.Transition(ctx, id, to); err != nil {
			return bookingSavedMsg{err: err}
		}

		return bookingSavedMsg{status: fmt.Sprintf("Booking %d is now %s.", id, to)}
	}
}

func (m BookingsModel) createCmd() tea.Cmd {
	householdID, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("household")))
	helperID, _ := strconv.Atoi(strings.TrimSpace(m.form.GetString("helper")))
	start, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("start")))
	end, _ := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("end")))

	params := booking.CreateParams{
		HouseholdID: householdID,
		HelperID:    helperID,
		ServiceType: strings.TrimSpace(m.form.GetString("service")),
		StartDate:   start,
		EndDate:     end,
		Location:    strings.TrimSpace(m.form.GetString("location")),
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		b, err := m.bookingService.Create(ctx, params)
		if err != nil {
			return bookingSavedMsg{err: err}
		}

		return bookingSavedMsg{status: fmt.Sprintf("Booking %d created.", b.ID)}
	}
}
