package message

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/message"
)

type Handler struct {
	svc *message.Service
}

func NewHandler(svc *message.Service) *Handler {
	return &Handler{svc: svc}
}

// ConversationRoutes mounts the conversation threads.
func (h *Handler) ConversationRoutes(r chi.Router) {
	r.Get("/", h.conversations)
	r.Get("/{id}", h.conversation)
	r.Get("/{id}/messages", h.thread)
	r.Post("/{id}/messages", h.send)
}

// Routes mounts the message feed.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/{id}/read", h.markRead)
}

type sendMessageRequest struct {
	Sender    string `json:"sender,omitempty"`
	Recipient string `json:"recipient"`
	Body      string `json:"body"`
}

type conversationResponse struct {
	ID              int       `json:"id"`
	HouseholdID     int       `json:"household_id"`
	HelperID        int       `json:"helper_id"`
	LastMessage     string    `json:"last_message"`
	LastMessageTime time.Time `json:"last_message_time"`
	Unread          int       `json:"unread"`
}

type messageResponse struct {
	ID             int       `json:"id"`
	ConversationID int       `json:"conversation_id"`
	Sender         string    `json:"sender"`
	Recipient      string    `json:"recipient"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
	Read           bool      `json:"read"`
}

func toConversationResponse(c *message.Conversation) conversationResponse {
	return conversationResponse(*c)
}

func toMessageResponse(m *message.Message) messageResponse {
	return messageResponse(*m)
}

func toMessageList(messages []*message.Message) []messageResponse {
	resp := make([]messageResponse, len(messages))
	for i, m := range messages {
		resp[i] = toMessageResponse(m)
	}

	return resp
}

func (h *Handler) conversations(w http.ResponseWriter, r *http.Request) {
	convs, err := h.svc.Conversations(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]conversationResponse, len(convs))
	for i, c := range convs {
		resp[i] = toConversationResponse(c)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) conversation(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Conversation(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toConversationResponse(c))
}

func (h *Handler) thread(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.Conversation(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	messages, err := h.svc.List(r.Context(), message.ListFilter{ConversationID: &id})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMessageList(messages))
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req sendMessageRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.Send(r.Context(), message.SendParams{
		ConversationID: id,
		Sender:         req.Sender,
		Recipient:      req.Recipient,
		Body:           req.Body,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toMessageResponse(m))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	messages, err := h.svc.List(r.Context(), message.ListFilter{
		ConversationID: respond.QueryInt(r, "conversation_id"),
		Sender:         r.URL.Query().Get("sender"),
		Unread:         respond.QueryBool(r, "unread"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMessageList(messages))
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	m, err := h.svc.MarkRead(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toMessageResponse(m))
}
