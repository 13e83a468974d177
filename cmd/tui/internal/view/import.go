package view

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/importer"
)

const importTimeout = 2 * time.Minute

type importState int

const (
	importStateFilePick importState = iota
	importStateParsing
	importStatePreview
	importStateResult
)

type ImportModel struct {
	CommonModel
	helperService *helper.Service
	importService *importer.Service

	state      importState
	filePicker filepicker.Model

	parsed   *importer.Result
	rowList  list.Model
	selected map[int]bool

	status string
	err    error
}

func NewImportModel(helperSvc *helper.Service, impSvc *importer.Service) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv", ".xlsx"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		helperService: helperSvc,
		importService: impSvc,
		filePicker:    fp,
		selected:      make(map[int]bool),
	}
}

func (m ImportModel) Title() string { return "Import Helper Roster" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStatePreview {
		return "Space: toggle | a: all | n: none | Enter: register | Esc: cancel"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStatePreview {
			return m.updatePreview(msg)
		}

	case parseResultMsg:
		if msg.err != nil {
			m.state = importStateResult
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.parsed = msg.result
		m.selected = make(map[int]bool, len(msg.result.Rows))

		items := make([]list.Item, len(msg.result.Rows))
		for i, row := range msg.result.Rows {
			items[i] = rowItem{row: row, index: i}
			m.selected[i] = true
		}

		m.rowList = list.New(items, rowDelegate{selected: &m.selected}, 80, 20)
		m.rowList.Title = fmt.Sprintf("Roster (%s layout)", msg.result.Profile)
		m.rowList.SetShowStatusBar(false)
		m.rowList.SetFilteringEnabled(false)
		m.rowList.SetShowHelp(false)
		m.state = importStatePreview

		return m, nil

	case registerResultMsg:
		m.state = importStateResult
		m.err = msg.err
		m.status = fmt.Sprintf("Registered %d helpers.", msg.count)

		if msg.err != nil {
			m.status = fmt.Sprintf("Registered %d helpers, then failed: %v", msg.count, msg.err)
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateParsing
		m.status = fmt.Sprintf("Reading %s...", path)

		return m, m.parseCmd(path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStatePreview, importStateResult:
		m.state = importStateFilePick
		m.parsed = nil
		m.err = nil
		m.status = ""
		m.selected = make(map[int]bool)

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		idx := m.rowList.Index()
		m.selected[idx] = !m.selected[idx]

		return m, nil
	case "a":
		for i := range m.parsed.Rows {
			m.selected[i] = true
		}

		return m, nil
	case "n":
		for i := range m.parsed.Rows {
			m.selected[i] = false
		}

		return m, nil
	case "enter":
		return m, m.registerCmd()
	}

	var cmd tea.Cmd
	m.rowList, cmd = m.rowList.Update(msg)

	return m, cmd
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select a roster (CSV or XLSX):\n\n%s", m.filePicker.View()),
		)
	case importStateParsing:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStatePreview:
		return lipgloss.NewStyle().Padding(1).Render(m.rowList.View() + "\n" + m.rejectedView())
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) rejectedView() string {
	if m.parsed == nil || len(m.parsed.Rejected) == 0 {
		return ""
	}

	lines := make([]string, 0, len(m.parsed.Rejected)+1)
	lines = append(lines, fmt.Sprintf("Skipped %d lines:", len(m.parsed.Rejected)))

	for _, r := range m.parsed.Rejected {
		lines = append(lines, fmt.Sprintf("  line %d: %s", r.Line, r.Reason))
	}

	return lipgloss.NewStyle().Faint(true).Render(strings.Join(lines, "\n"))
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(okStyle(m.status) + "\n\n(Esc to go back)")
}

// formatOf maps a file extension onto a roster format.
func formatOf(path string) importer.Format {
	return importer.Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
}

// Messages

type parseResultMsg struct {
	result *importer.Result
	err    error
}

type registerResultMsg struct {
	count int
	err   error
}

func (m ImportModel) parseCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return parseResultMsg{err: err}
		}
		defer f.Close()

		result, err := m.importService.Parse(formatOf(path), f)

		return parseResultMsg{result: result, err: err}
	}
}

func (m ImportModel) registerCmd() tea.Cmd {
	var params []helper.CreateParams

	for i, row := range m.parsed.Rows {
		if m.selected[i] {
			params = append(params, row.Params)
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		for i, p := range params {
			if _, err := m.helperService.Create(ctx, p); err != nil {
				return registerResultMsg{count: i, err: err}
			}
		}

		return registerResultMsg{count: len(params)}
	}
}

// Roster row list item

type rowItem struct {
	row   importer.Row
	index int
}

func (i rowItem) Title() string       { return i.row.Params.Name }
func (i rowItem) Description() string { return "" }
func (i rowItem) FilterValue() string { return i.row.Params.Name }

type rowDelegate struct {
	selected *map[int]bool
}

func (d rowDelegate) Height() int                             { return 2 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(rowItem)
	if !ok {
		return
	}

	checkbox := "[ ]"
	if (*d.selected)[item.index] {
		checkbox = "[x]"
	}

	cursor := "  "
	if index == m.Index() {
		cursor = "> "
	}

	p := item.row.Params

	line1 := fmt.Sprintf("%s%s %-24s %3d  %s", cursor, checkbox, p.Name, p.Age, p.Type)
	line2 := fmt.Sprintf("      line %d  Fayda %s  Kebele %s", item.row.Line, p.FaydaID, p.KebeleID)

	fmt.Fprintf(w, "%s\n%s\n", line1, lipgloss.NewStyle().Faint(true).Render(line2))
}
