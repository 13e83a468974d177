package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	svc *booking.Service
}

func NewHandler(svc *booking.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}/status", h.updateStatus)
}

type createBookingRequest struct {
	HouseholdID int          `json:"household_id"`
	HelperID    int          `json:"helper_id"`
	ServiceType string       `json:"service_type"`
	StartDate   respond.Date `json:"start_date"`
	EndDate     respond.Date `json:"end_date"`
	Location    string       `json:"location"`
}

type updateStatusRequest struct {
	Status booking.Status `json:"status"`
}

type bookingResponse struct {
	ID          int            `json:"id"`
	HouseholdID int            `json:"household_id"`
	HelperID    int            `json:"helper_id"`
	ServiceType string         `json:"service_type"`
	StartDate   respond.Date   `json:"start_date"`
	EndDate     respond.Date   `json:"end_date"`
	Location    string         `json:"location"`
	Status      booking.Status `json:"status"`
}

func toResponse(b *booking.Booking) bookingResponse {
	return bookingResponse{
		ID:          b.ID,
		HouseholdID: b.HouseholdID,
		HelperID:    b.HelperID,
		ServiceType: b.ServiceType,
		StartDate:   respond.Date{Time: b.StartDate},
		EndDate:     respond.Date{Time: b.EndDate},
		Location:    b.Location,
		Status:      b.Status,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Create(r.Context(), booking.CreateParams{
		HouseholdID: req.HouseholdID,
		HelperID:    req.HelperID,
		ServiceType: req.ServiceType,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Location:    req.Location,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(b))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.svc.List(r.Context(), booking.ListFilter{
		Status:      respond.Query[booking.Status](r, "status"),
		HelperID:    respond.QueryInt(r, "helper_id"),
		HouseholdID: respond.QueryInt(r, "household_id"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = toResponse(b)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateStatusRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	b, err := h.svc.Transition(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}
