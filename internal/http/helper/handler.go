package helper

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
)

type Handler struct {
	svc *helper.Service
}

func NewHandler(svc *helper.Service) *Handler {
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

type createHelperRequest struct {
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Type        helper.Type `json:"type"`
	MedicalInfo string      `json:"medical_info"`
	Strengths   string      `json:"strengths"`
	Weaknesses  string      `json:"weaknesses"`
	FaydaID     string      `json:"fayda_id"`
	KebeleID    string      `json:"kebele_id"`
	Picture     string      `json:"picture"`
}

type updateHelperRequest struct {
	Name        *string      `json:"name,omitempty"`
	Age         *int         `json:"age,omitempty"`
	Type        *helper.Type `json:"type,omitempty"`
	MedicalInfo *string      `json:"medical_info,omitempty"`
	Strengths   *string      `json:"strengths,omitempty"`
	Weaknesses  *string      `json:"weaknesses,omitempty"`
	FaydaID     *string      `json:"fayda_id,omitempty"`
	KebeleID    *string      `json:"kebele_id,omitempty"`
	Picture     *string      `json:"picture,omitempty"`
}

type Response struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Age         int         `json:"age"`
	Type        helper.Type `json:"type"`
	MedicalInfo string      `json:"medical_info"`
	Strengths   string      `json:"strengths"`
	Weaknesses  string      `json:"weaknesses"`
	FaydaID     string      `json:"fayda_id"`
	KebeleID    string      `json:"kebele_id"`
	Picture     string      `json:"picture,omitempty"`
	Verified    bool        `json:"verified"`
}

func toResponse(x *helper.Helper) Response {
	return Response{
		ID:          x.ID,
		Name:        x.Name,
		Age:         x.Age,
		Type:        x.Type,
		MedicalInfo: x.MedicalInfo,
		Strengths:   x.Strengths,
		Weaknesses:  x.Weaknesses,
		FaydaID:     x.FaydaID,
		KebeleID:    x.KebeleID,
		Picture:     x.Picture,
		Verified:    x.Verified,
	}
}

// ToResponseList is shared with the roster import endpoint.
func ToResponseList(helpers []*helper.Helper) []Response {
	resp := make([]Response, len(helpers))
	for i, x := range helpers {
		resp[i] = toResponse(x)
	}

	return resp
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createHelperRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	created, err := h.svc.Create(r.Context(), helper.CreateParams(req))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(created))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	helpers, err := h.svc.List(r.Context(), helper.ListFilter{
		Verified: respond.QueryBool(r, "verified"),
		Type:     respond.Query[helper.Type](r, "type"),
	})
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToResponseList(helpers))
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

	var req updateHelperRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	updated, err := h.svc.Update(r.Context(), id, helper.UpdateParams(req))
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
