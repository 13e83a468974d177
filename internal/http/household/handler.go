package household

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	svc *household.Service
}

func NewHandler(svc *household.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/verify", h.verify)
}

type createHouseholdRequest struct {
	Name           string                  `json:"name"`
	Children       int                     `json:"children"`
	ChildrenAges   string                  `json:"children_ages"`
	TotalResidents int                     `json:"total_residents"`
	MaleCount      int                     `json:"male_count"`
	FemaleCount    int                     `json:"female_count"`
	HouseType      string                  `json:"house_type"`
	RoomSize       string                  `json:"room_size"`
	NumberOfRooms  int                     `json:"number_of_rooms"`
	HouseSize      household.HouseSize     `json:"house_size"`
	PaymentStatus  household.PaymentStatus `json:"payment_status"`
}

type updateHouseholdRequest struct {
	Name          *string                  `json:"name,omitempty"`
	ChildrenAges  *string                  `json:"children_ages,omitempty"`
	HouseType     *string                  `json:"house_type,omitempty"`
	HouseSize     *household.HouseSize     `json:"house_size,omitempty"`
	PaymentStatus *household.PaymentStatus `json:"payment_status,omitempty"`
}

type householdResponse struct {
	ID             int                     `json:"id"`
	Name           string                  `json:"name"`
	Children       int                     `json:"children"`
	ChildrenAges   string                  `json:"children_ages"`
	TotalResidents int                     `json:"total_residents"`
	MaleCount      int                     `json:"male_count"`
	FemaleCount    int                     `json:"female_count"`
	HouseType      string                  `json:"house_type"`
	RoomSize       string                  `json:"room_size"`
	NumberOfRooms  int                     `json:"number_of_rooms"`
	HouseSize      household.HouseSize     `json:"house_size"`
	PaymentStatus  household.PaymentStatus `json:"payment_status"`
	Verified       bool                    `json:"verified"`
}

func toResponse(x *household.Household) householdResponse {
	return householdResponse{
		ID:             x.ID,
		Name:           x.Name,
		Children:       x.Children,
		ChildrenAges:   x.ChildrenAges,
		TotalResidents: x.TotalResidents,
		MaleCount:      x.MaleCount,
		FemaleCount:    x.FemaleCount,
		HouseType:      x.HouseType,
		RoomSize:       x.RoomSize,
		NumberOfRooms:  x.NumberOfRooms,
		HouseSize:      x.HouseSize,
		PaymentStatus:  x.PaymentStatus,
		Verified:       x.Verified,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createHouseholdRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), household.CreateParams(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	households, err := h.svc.List(r.Context(), household.ListFilter{
		Verified:      respond.QueryBool(r, "verified"),
		PaymentStatus: respond.Query[household.PaymentStatus](r, "payment_status"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]householdResponse, len(households))
	for i, x := range households {
		resp[i] = toResponse(x)
	}

	respond.JSON(w, http.StatusOK, resp)
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

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req updateHouseholdRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), id, household.UpdateParams(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(updated))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	verified, err := h.svc.Verify(r.Context(), id)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(verified))
}
