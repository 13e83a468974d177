package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/betawi/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/betawi/internal/app"
	"github.com/MrJamesThe3rd/betawi/internal/config"
)

type model struct {
	app *app.App

	currentView View
	screen      view.View
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewBookings  View = 2
	ViewReviews   View = 3
	ViewPayouts   View = 4
	ViewLedger    View = 5
	ViewMessages  View = 6
	ViewImport    View = 7
	ViewExport    View = 8
)

// quietLogs keeps slog output off the terminal while the UI owns it. With
// DEBUG set, logs go to debug.log instead.
func quietLogs() {
	if os.Getenv("DEBUG") == "" {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return
	}

	f, err := tea.LogToFile("debug.log", "tui")
	if err != nil {
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
}

func initialModel() (model, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return model{}, err
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return model{}, err
	}

	return model{app: a, currentView: ViewMenu}, nil
}

// open builds a fresh screen so every visit reloads its data.
func (m model) open(v View) view.View {
	switch v {
	case ViewDashboard:
		return view.NewDashboardModel(m.app.Reports)
	case ViewBookings:
		return view.NewBookingsModel(m.app.Bookings)
	case ViewReviews:
		return view.NewReviewModel(m.app.Reviews)
	case ViewPayouts:
		return view.NewPayoutModel(m.app.Accounts)
	case ViewLedger:
		return view.NewLedgerModel(m.app.Accounts)
	case ViewMessages:
		return view.NewMessagesModel(m.app.Messages)
	case ViewImport:
		return view.NewImportModel(m.app.Helpers, m.app.Importer)
	case ViewExport:
		return view.NewExportModel(m.app.Export, m.app.Accounts)
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1", "2", "3", "4", "5", "6", "7", "8":
				m.currentView = View(msg.String()[0] - '0')
				m.screen = m.open(m.currentView)

				return m, m.screen.Init()
			}

			return m, nil
		}

		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		m.screen = nil

		return m, nil
	}

	if m.screen == nil {
		return m, nil
	}

	next, cmd := m.screen.Update(msg)
	if s, ok := next.(view.View); ok {
		m.screen = s
	}

	return m, cmd
}

func (m model) View() string {
	if m.currentView == ViewMenu || m.screen == nil {
		return lipgloss.NewStyle().Padding(2).Render(
			"Betawi Admin\n\n" +
				"1. Dashboard\n" +
				"2. Bookings\n" +
				"3. Moderate Reviews\n" +
				"4. Process Payouts\n" +
				"5. Ledger\n" +
				"6. Messages\n" +
				"7. Import Helper Roster\n" +
				"8. Export Ledger\n\n" +
				"q. Quit",
		)
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Render(m.screen.Title())
	help := lipgloss.NewStyle().Faint(true).Render(m.screen.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, title, m.screen.View(), help)
}

func main() {
	m, err := initialModel()
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer m.app.Close()

	quietLogs()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
