package message

import (
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/status"
)

// AdminSender is the sender name used for messages written from the console.
const AdminSender = "Admin"

type ReadState string

const (
	ReadStateUnread ReadState = "unread"
	ReadStateRead   ReadState = "read"
)

// ReadMachine allows a message to be read once and never unread.
var ReadMachine = status.NewMachine("message", map[ReadState][]ReadState{
	ReadStateUnread: {ReadStateRead},
	ReadStateRead:   {},
})

// Conversation is the thread between a household and a helper.
type Conversation struct {
	ID              int
	HouseholdID     int
	HelperID        int
	LastMessage     string
	LastMessageTime time.Time
	Unread          int
}

type Message struct {
	ID             int
	ConversationID int
	Sender         string
	Recipient      string
	Body           string
	SentAt         time.Time
	Read           bool
}

func (m Message) SentBy() string { return m.Sender }

func (m Message) State() ReadState {
	if m.Read {
		return ReadStateRead
	}

	return ReadStateUnread
}
