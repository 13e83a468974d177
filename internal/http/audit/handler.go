package audit

import (
	"encoding/json"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	reader      audit.Reader
	collections []string
}

// NewHandler serves the history of the given collections only.
func NewHandler(reader audit.Reader, collections []string) *Handler {
	return &Handler{reader: reader, collections: collections}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{collection}/{id}", h.history)
}

type changeResponse struct {
	ID     uuid.UUID       `json:"id"`
	Op     audit.Op        `json:"op"`
	Before json.RawMessage `json:"before,omitempty"`
	After  json.RawMessage `json:"after,omitempty"`
	At     time.Time       `json:"at"`
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	if !slices.Contains(h.collections, collection) {
		http.Error(w, "unknown collection", http.StatusNotFound)
		return
	}

	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	changes, err := h.reader.History(r.Context(), collection, id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]changeResponse, len(changes))
	for i, c := range changes {
		resp[i] = changeResponse{ID: c.ID, Op: c.Op, Before: c.Before, After: c.After, At: c.At}
	}

	respond.JSON(w, http.StatusOK, resp)
}
