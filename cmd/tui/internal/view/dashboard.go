package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/report"
)

type DashboardModel struct {
	CommonModel
	reportService *report.Service

	metrics   report.Metrics
	analytics report.Analytics
	activity  []report.Activity
	loading   bool
	err       error
}

const (
	dashboardTopHelpers = 4
	dashboardActivity   = 6
)

func NewDashboardModel(svc *report.Service) DashboardModel {
	return DashboardModel{reportService: svc, loading: true}
}

func (m DashboardModel) Title() string { return "Dashboard" }

func (m DashboardModel) ShortHelp() string { return "r: refresh | Esc: back" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}

	case metricsMsg:
		m.loading = false
		m.metrics = msg.metrics
		m.analytics = msg.analytics
		m.activity = msg.activity
		m.err = msg.err
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	box := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		Width(36)

	mt := m.metrics

	money := box.Render(fmt.Sprintf(
		"Money\n\nBalance     %s\nIncome      %s\nCommission  %s\nPayouts     %s\nPending     %s",
		activeStyle(FormatBirr(mt.PlatformBalance)),
		FormatBirr(mt.TotalIncome),
		FormatBirr(mt.TotalCommission),
		FormatBirr(mt.TotalPayouts),
		FormatBirr(mt.PendingPayouts),
	))

	people := box.Render(fmt.Sprintf(
		"People\n\nHelpers     %d (%d verified)\nHouseholds  %d\nRating      %.1f / 5\nUnread      %d",
		mt.Helpers, mt.VerifiedHelpers, mt.Households, mt.AverageRating, mt.UnreadMessages,
	))

	work := box.Render(fmt.Sprintf(
		"Work\n\nBookings    %d\n  pending   %d\n  completed %d\nContracts   %d active\nReviews     %d (%d flagged)",
		mt.Bookings, mt.PendingBookings, mt.CompletedBookings, mt.ActiveContracts, mt.Reviews, mt.FlaggedReviews,
	))

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, money, people, work),
		lipgloss.JoinHorizontal(lipgloss.Top, box.Render(m.trendView()), box.Render(m.helpersView()), box.Render(m.servicesView())),
		box.Width(110).Render(m.activityView()),
	))
}

func (m DashboardModel) trendView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Bookings by month  %s done\n\n", activeStyle(fmt.Sprintf("%.1f%%", m.analytics.CompletionRate)))

	for _, t := range m.analytics.Trend {
		fmt.Fprintf(&b, "%s %3d %3d done %3d open\n", t.Month.Format("Jan 2006"), t.Bookings, t.Completed, t.Pending)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) helpersView() string {
	var b strings.Builder

	b.WriteString("Top helpers\n\n")

	for _, h := range m.analytics.TopHelpers {
		fmt.Fprintf(&b, "%-18s %3d\n", h.Name, h.Bookings)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) servicesView() string {
	var b strings.Builder

	b.WriteString("Services\n\n")

	for _, s := range m.analytics.ServiceMix {
		fmt.Fprintf(&b, "%-14s %5.1f%%\n", s.ServiceType, s.Percent)
	}

	return strings.TrimRight(b.String(), "\n")
}

func (m DashboardModel) activityView() string {
	if len(m.activity) == 0 {
		return "Recent activity\n\nNothing yet."
	}

	var b strings.Builder

	b.WriteString("Recent activity\n\n")

	for _, a := range m.activity {
		fmt.Fprintf(&b, "%s  %s  %s\n", a.At.Local().Format("02 Jan 15:04"), levelStyle(a.Level, fmt.Sprintf("%-22s", a.Title)), a.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

func levelStyle(level report.Level, s string) string {
	switch level {
	case report.LevelAlert:
		return errorStyle(s)
	case report.LevelSuccess:
		return okStyle(s)
	default:
		return s
	}
}

type metricsMsg struct {
	metrics   report.Metrics
	analytics report.Analytics
	activity  []report.Activity
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		metrics, err := m.reportService.Metrics(ctx)
		if err != nil {
			return metricsMsg{err: err}
		}

		analytics, err := m.reportService.Analytics(ctx, dashboardTopHelpers)
		if err != nil {
			return metricsMsg{err: err}
		}

		activity, err := m.reportService.Activity(ctx, dashboardActivity)

		return metricsMsg{metrics: metrics, analytics: analytics, activity: activity, err: err}
	}
}
