package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/contact"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	svc *contact.Service
}

func NewHandler(svc *contact.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type contactRequest struct {
	Name             string       `json:"name"`
	Type             contact.Type `json:"type"`
	Phone            string       `json:"phone"`
	Email            string       `json:"email"`
	Address          string       `json:"address"`
	City             string       `json:"city"`
	EmergencyContact string       `json:"emergency_contact,omitempty"`
	EmergencyPhone   string       `json:"emergency_phone,omitempty"`
}

type contactResponse struct {
	ID int `json:"id"`
	contactRequest
}

func toResponse(c *contact.Contact) contactResponse {
	return contactResponse{
		ID: c.ID,
		contactRequest: contactRequest{
			Name:             c.Name,
			Type:             c.Type,
			Phone:            c.Phone,
			Email:            c.Email,
			Address:          c.Address,
			City:             c.City,
			EmergencyContact: c.EmergencyContact,
			EmergencyPhone:   c.EmergencyPhone,
		},
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), contact.Params(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.svc.List(r.Context(), respond.Query[contact.Type](r, "type"))
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]contactResponse, len(contacts))
	for i, c := range contacts {
		resp[i] = toResponse(c)
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

	respond.JSON(w, http.StatusOK, toResponse(c))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req contactRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Update(r.Context(), id, contact.Params(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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
