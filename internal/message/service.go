package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/filter"
)

type ConversationRepository interface {
	Get(ctx context.Context, id int) (*Conversation, error)
	Update(ctx context.Context, id int, patch func(*Conversation) error) (*Conversation, error)
	List(ctx context.Context) ([]*Conversation, error)
}

type Repository interface {
	Create(ctx context.Context, m *Message) error
	Get(ctx context.Context, id int) (*Message, error)
	Update(ctx context.Context, id int, patch func(*Message) error) (*Message, error)
	List(ctx context.Context) ([]*Message, error)
}

type Service struct {
	conversations ConversationRepository
	messages      Repository
	now           func() time.Time
}

func NewService(conversations ConversationRepository, messages Repository) *Service {
	return &Service{
		conversations: conversations,
		messages:      messages,
		now:           time.Now,
	}
}

// MarkRead flips a message to read and decrements its conversation's unread
// counter. Reading an already read message changes nothing. The counter moves
// first and is restored if the message cannot be marked.
func (s *Service) MarkRead(ctx context.Context, id int) (*Message, error) {
	current, err := s.messages.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("marking message read: %w", err)
	}

	if current.Read {
		return current, nil
	}

	decremented, err := s.adjustUnread(ctx, current.ConversationID, -1)
	if err != nil {
		return nil, fmt.Errorf("updating unread count: %w", err)
	}

	m, err := s.messages.Update(ctx, id, func(m *Message) error {
		if err := ReadMachine.Transition(m.State(), ReadStateRead); err != nil {
			return err
		}

		m.Read = true

		return nil
	})
	if err != nil {
		if decremented {
			if _, rerr := s.adjustUnread(ctx, current.ConversationID, 1); rerr != nil {
				err = errors.Join(err, fmt.Errorf("restoring unread count: %w", rerr))
			}
		}

		return nil, fmt.Errorf("marking message read: %w", err)
	}

	return m, nil
}

// adjustUnread moves a conversation's unread counter by delta, never below zero.
// It reports whether the counter changed. Orphan messages have no counter to move.
func (s *Service) adjustUnread(ctx context.Context, conversationID, delta int) (bool, error) {
	if conversationID == 0 {
		return false, nil
	}

	changed := false

	_, err := s.conversations.Update(ctx, conversationID, func(c *Conversation) error {
		if c.Unread+delta < 0 {
			return nil
		}

		c.Unread += delta
		changed = true

		return nil
	})
	if errors.Is(err, errs.ErrNotFound) {
		return false, nil
	}

	return changed, err
}

type SendParams struct {
	ConversationID int
	Sender         string
	Recipient      string
	Body           string
}

// Send appends a message to a conversation. Messages from the console are
// born read; anything else counts as unread for the admin. The conversation
// summary is written first and rolled back if the message cannot be stored.
func (s *Service) Send(ctx context.Context, params SendParams) (*Message, error) {
	body := strings.TrimSpace(params.Body)
	if body == "" {
		return nil, errs.Required("body")
	}

	if params.ConversationID == 0 {
		return nil, errs.Required("conversationID")
	}

	sender := params.Sender
	if sender == "" {
		sender = AdminSender
	}

	now := s.now()
	m := &Message{
		ConversationID: params.ConversationID,
		Sender:         sender,
		Recipient:      params.Recipient,
		Body:           body,
		SentAt:         now,
		Read:           sender == AdminSender,
	}

	var previous Conversation

	_, err := s.conversations.Update(ctx, params.ConversationID, func(c *Conversation) error {
		previous = *c

		c.LastMessage = body
		c.LastMessageTime = now

		if !m.Read {
			c.Unread++
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	if err := s.messages.Create(ctx, m); err != nil {
		_, rerr := s.conversations.Update(ctx, params.ConversationID, func(c *Conversation) error {
			c.LastMessage = previous.LastMessage
			c.LastMessageTime = previous.LastMessageTime

			if !m.Read && c.Unread > 0 {
				c.Unread--
			}

			return nil
		})
		if rerr != nil {
			err = errors.Join(err, fmt.Errorf("restoring conversation: %w", rerr))
		}

		return nil, fmt.Errorf("sending message: %w", err)
	}

	return m, nil
}

type ListFilter struct {
	ConversationID *int
	Sender         string
	Unread         *bool
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]*Message, error) {
	messages, err := s.messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	messages = filter.BySenderSubstring(messages, f.Sender)

	if f.ConversationID != nil {
		messages = filter.Where(messages, func(m *Message) bool { return m.ConversationID == *f.ConversationID })
	}

	if f.Unread != nil {
		messages = filter.Where(messages, func(m *Message) bool { return m.Read != *f.Unread })
	}

	return messages, nil
}

func (s *Service) Conversations(ctx context.Context) ([]*Conversation, error) {
	return s.conversations.List(ctx)
}

func (s *Service) Conversation(ctx context.Context, id int) (*Conversation, error) {
	return s.conversations.Get(ctx, id)
}
