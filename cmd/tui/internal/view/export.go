package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/export"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService  *export.Service
	accountService *account.Service

	state   exportState
	err     error
	form    *huh.Form
	spinner spinner.Model
	file    string
	summary string
}

func NewExportModel(exportSvc *export.Service, accountSvc *account.Service) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return ExportModel{
		exportService:  exportSvc,
		accountService: accountSvc,
		state:          exportStateForm,
		form:           buildExportForm(),
		spinner:        s,
	}
}

func (m ExportModel) Title() string { return "Export Ledger" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
	case exportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	format := export.Format(m.form.GetString("format"))
	typ := m.form.GetString("type")
	dir := m.form.GetString("path")

	m.state = exportStateExporting
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd(format, typ, dir))
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult
		m.err = result.err
		m.file = result.file
		m.summary = result.summary

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func buildExportForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV", string(export.FormatCSV)),
					huh.NewOption("Excel workbook", string(export.FormatXLSX)),
					huh.NewOption("Bundle (csv + xlsx + summary)", string(export.FormatBundle)),
				),
			huh.NewSelect[string]().
				Key("type").
				Title("Transactions").
				Options(
					huh.NewOption("All", ""),
					huh.NewOption("Income only", string(ledger.TypeIncome)),
					huh.NewOption("Payouts only", string(ledger.TypePayout)),
				),
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./exports").
				Validate(notBlank),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case exportStateExporting:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Exporting ledger...", m.spinner.View()),
		)

	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(errorStyle(fmt.Sprintf("Error: %v", m.err)))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Export Complete!")

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			"",
			"Written to "+m.file,
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	file    string
	summary string
	err     error
}

const exportTimeout = 2 * time.Minute

func (m ExportModel) runExportCmd(format export.Format, typ, dir string) tea.Cmd {
	filter := account.TransactionFilter{}
	if typ != "" {
		filter.Type = new(ledger.Type(typ))
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		path, err := writeExport(ctx, m.exportService, format, filter, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		txs, err := m.accountService.Transactions(ctx, filter)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{file: path, summary: m.exportService.Summary(txs)}
	}
}

// writeExport creates dir if needed and writes ledger-<date>.<format> into it.
func writeExport(ctx context.Context, svc *export.Service, format export.Format, f account.TransactionFilter, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("ledger-%s.%s", time.Now().Format(time.DateOnly), format))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := svc.Write(ctx, out, format, f); err != nil {
		out.Close()
		os.Remove(path)

		return "", err
	}

	return path, out.Close()
}
