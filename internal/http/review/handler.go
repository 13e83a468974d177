package review

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/review"
)

type Handler struct {
	svc *review.Service
}

func NewHandler(svc *review.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/stats", h.stats)
	r.Get("/{id}", h.get)
	r.Post("/{id}/resolve", h.resolve)
	r.Post("/{id}/flag", h.flag)
}

type createReviewRequest struct {
	HouseholdID int          `json:"household_id"`
	HelperID    int          `json:"helper_id"`
	Rating      int          `json:"rating"`
	Comment     string       `json:"comment"`
	Date        respond.Date `json:"date"`
}

type reviewResponse struct {
	ID          int           `json:"id"`
	HouseholdID int           `json:"household_id"`
	HelperID    int           `json:"helper_id"`
	Rating      int           `json:"rating"`
	Comment     string        `json:"comment"`
	Date        respond.Date  `json:"date"`
	Status      review.Status `json:"status"`
}

type statsResponse struct {
	Total         int     `json:"total"`
	AverageRating float64 `json:"average_rating"`
	Pending       int     `json:"pending"`
	Flagged       int     `json:"flagged"`
	Resolved      int     `json:"resolved"`
}

func toResponse(x *review.Review) reviewResponse {
	return reviewResponse{
		ID:          x.ID,
		HouseholdID: x.HouseholdID,
		HelperID:    x.HelperID,
		Rating:      x.Rating,
		Comment:     x.Comment,
		Date:        respond.Date{Time: x.Date},
		Status:      x.Status,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), review.CreateParams{
		HouseholdID: req.HouseholdID,
		HelperID:    req.HelperID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		Date:        req.Date.Time,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.svc.List(r.Context(), respond.Query[review.Status](r, "status"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]reviewResponse, len(reviews))
	for i, x := range reviews {
		resp[i] = toResponse(x)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Stats(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, statsResponse(s))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	found, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(found))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.svc.Resolve)
}

func (h *Handler) flag(w http.ResponseWriter, r *http.Request) {
	h.moderate(w, r, h.svc.Flag)
}

func (h *Handler) moderate(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, id int) (*review.Review, error)) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	updated, err := action(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}
