package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/betawi/internal/message"
)

type messagesState int

const (
	messagesStateInbox messagesState = iota
	messagesStateThread
)

type MessagesModel struct {
	CommonModel
	messageService *message.Service

	state         messagesState
	table         table.Model
	conversations []*message.Conversation

	current *message.Conversation
	thread  []*message.Message
	compose textinput.Model

	loading bool
	status  string
}

func NewMessagesModel(svc *message.Service) MessagesModel {
	columns := []table.Column{
		{Title: "ID", Width: 4},
		{Title: "Household", Width: 10},
		{Title: "Helper", Width: 7},
		{Title: "Last message", Width: 40},
		{Title: "When", Width: 17},
		{Title: "Unread", Width: 7},
	}

	ti := textinput.New()
	ti.Placeholder = "Type a message"
	ti.Width = 60
	ti.Prompt = "Admin: "

	return MessagesModel{
		messageService: svc,
		table:          newTable(columns),
		compose:        ti,
		loading:        true,
	}
}

func (m MessagesModel) Title() string { return "Messages" }

func (m MessagesModel) ShortHelp() string {
	if m.state == messagesStateThread {
		return "Enter: send | Esc: inbox"
	}

	return "Enter: open | r: refresh | Esc: back"
}

func (m MessagesModel) Init() tea.Cmd {
	return m.loadInboxCmd()
}

func (m MessagesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInboxMsg:
		m.loading = false
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.conversations = msg.conversations
		m.refreshTable()

		return m, nil

	case loadThreadMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
			return m, nil
		}

		m.current = msg.conversation
		m.thread = msg.messages
		m.state = messagesStateThread
		m.status = ""
		m.compose.SetValue("")
		m.compose.Focus()

		return m, textinput.Blink

	case sentMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Not sent: %v", msg.err)
			return m, nil
		}

		m.compose.SetValue("")

		return m, m.openThreadCmd(m.current.ID)

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	if m.state == messagesStateThread {
		return m.updateThread(msg)
	}

	return m.updateInbox(msg)
}

func (m MessagesModel) updateInbox(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInboxCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx >= 0 && idx < len(m.conversations) {
				return m, m.openThreadCmd(m.conversations[idx].ID)
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m MessagesModel) updateThread(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = messagesStateInbox
			m.current = nil
			m.compose.Blur()
			m.loading = true

			return m, m.loadInboxCmd()
		case tea.KeyEnter:
			return m, m.sendCmd(m.compose.Value())
		}
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)

	return m, cmd
}

func (m MessagesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading conversations...")
	}

	var content string

	if m.state == messagesStateThread && m.current != nil {
		content = m.threadView()
	} else {
		content = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Render(m.table.View())
	}

	if m.status != "" {
		content = errorStyle(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m MessagesModel) threadView() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Conversation #%d  |  household %d, helper %d\n\n", m.current.ID, m.current.HouseholdID, m.current.HelperID)

	for _, msg := range m.thread {
		sender := msg.Sender
		if sender == message.AdminSender {
			sender = activeStyle(sender)
		}

		fmt.Fprintf(&b, "%s  %s → %s\n  %s\n\n", msg.SentAt.Format("2006-01-02 15:04"), sender, msg.Recipient, msg.Body)
	}

	b.WriteString(m.compose.View())

	return b.String()
}

func (m *MessagesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.conversations))
	for _, c := range m.conversations {
		unread := ""
		if c.Unread > 0 {
			unread = strconv.Itoa(c.Unread)
		}

		rows = append(rows, table.Row{
			strconv.Itoa(c.ID),
			strconv.Itoa(c.HouseholdID),
			strconv.Itoa(c.HelperID),
			c.LastMessage,
			c.LastMessageTime.Format("2006-01-02 15:04"),
			unread,
		})
	}

	m.table.SetRows(rows)
}

// replyTo picks the other party of the thread: whoever last wrote to the admin.
func replyTo(thread []*message.Message) string {
	for i := len(thread) - 1; i >= 0; i-- {
		if thread[i].Sender != message.AdminSender {
			return thread[i].Sender
		}
	}

	for i := len(thread) - 1; i >= 0; i-- {
		if thread[i].Recipient != "" {
			return thread[i].Recipient
		}
	}

	return ""
}

// Messages

type loadInboxMsg struct {
	conversations []*message.Conversation
	err           error
}

func (m MessagesModel) loadInboxCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		conversations, err := m.messageService.Conversations(ctx)

		return loadInboxMsg{conversations: conversations, err: err}
	}
}

type loadThreadMsg struct {
	conversation *message.Conversation
	messages     []*message.Message
	err          error
}

// openThreadCmd loads a conversation and marks its unread messages as read.
func (m MessagesModel) openThreadCmd(id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		thread, err := m.messageService.List(ctx, message.ListFilter{ConversationID: &id})
		if err != nil {
			return loadThreadMsg{err: err}
		}

		for _, msg := range thread {
			if msg.Read {
				continue
			}

			if _, err := m.messageService.MarkRead(ctx, msg.ID); err != nil {
				return loadThreadMsg{err: err}
			}

			msg.Read = true
		}

		c, err := m.messageService.Conversation(ctx, id)

		return loadThreadMsg{conversation: c, messages: thread, err: err}
	}
}

type sentMsg struct {
	err error
}

func (m MessagesModel) sendCmd(body string) tea.Cmd {
	params := message.SendParams{
		ConversationID: m.current.ID,
		Sender:         message.AdminSender,
		Recipient:      replyTo(m.thread),
		Body:           body,
	}

	return func() tea.Msg {
		ctx, cancel := OpCtx()
		defer cancel()

		_, err := m.messageService.Send(ctx, params)

		return sentMsg{err: err}
	}
}
