package contract

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	svc *contract.Service
}

func NewHandler(svc *contract.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/activate", h.activate)
	r.Post("/{id}/complete", h.complete)
}

type createContractRequest struct {
	HelperID        int             `json:"helper_id"`
	HouseholdID     int             `json:"household_id"`
	ServiceType     string          `json:"service_type"`
	StartDate       respond.Date    `json:"start_date"`
	EndDate         respond.Date    `json:"end_date"`
	MonthlyRate     int64           `json:"monthly_rate"`
	Status          contract.Status `json:"status,omitempty"`
	Terms           string          `json:"terms"`
	PaymentSchedule string          `json:"payment_schedule"`
}

type contractResponse struct {
	ID              int             `json:"id"`
	HelperID        int             `json:"helper_id"`
	HouseholdID     int             `json:"household_id"`
	ServiceType     string          `json:"service_type"`
	StartDate       respond.Date    `json:"start_date"`
	EndDate         respond.Date    `json:"end_date"`
	MonthlyRate     int64           `json:"monthly_rate"`
	Months          int64           `json:"months"`
	TotalValue      int64           `json:"total_value"`
	Status          contract.Status `json:"status"`
	Terms           string          `json:"terms"`
	PaymentSchedule string          `json:"payment_schedule"`
}

func toResponse(c *contract.Contract) (contractResponse, error) {
	months, err := c.Months()
	if err != nil {
		return contractResponse{}, err
	}

	value, err := c.Value()
	if err != nil {
		return contractResponse{}, err
	}

	return contractResponse{
		ID:              c.ID,
		HelperID:        c.HelperID,
		HouseholdID:     c.HouseholdID,
		ServiceType:     c.ServiceType,
		StartDate:       respond.Date{Time: c.StartDate},
		EndDate:         respond.Date{Time: c.EndDate},
		MonthlyRate:     c.MonthlyRate,
		Months:          months,
		TotalValue:      value,
		Status:          c.Status,
		Terms:           c.Terms,
		PaymentSchedule: c.PaymentSchedule,
	}, nil
}

func (h *Handler) write(w http.ResponseWriter, status int, c *contract.Contract) {
	resp, err := toResponse(c)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, status, resp)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createContractRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), contract.CreateParams{
		HelperID:        req.HelperID,
		HouseholdID:     req.HouseholdID,
		ServiceType:     req.ServiceType,
		StartDate:       req.StartDate.Time,
		EndDate:         req.EndDate.Time,
		MonthlyRate:     req.MonthlyRate,
		Status:          req.Status,
		Terms:           req.Terms,
		PaymentSchedule: req.PaymentSchedule,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.write(w, http.StatusCreated, c)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contracts, err := h.svc.List(r.Context(), respond.Query[contract.Status](r, "status"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]contractResponse, 0, len(contracts))

	for _, c := range contracts {
		item, err := toResponse(c)
		if err != nil {
			respond.Error(w, err)
			return
		}

		resp = append(resp, item)
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.write(w, http.StatusOK, c)
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Activate(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.write(w, http.StatusOK, c)
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Complete(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.write(w, http.StatusOK, c)
}
