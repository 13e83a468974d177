package roster

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	helperHandler "github.com/MrJamesThe3rd/betawi/internal/http/helper"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/importer"
)

const maxUpload = 10 << 20

type Handler struct {
	svc *importer.Service
}

func NewHandler(svc *importer.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importRoster)
	r.Post("/preview", h.preview)
}

type rejectionResponse struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type importResponse struct {
	Profile  string                   `json:"profile"`
	Created  []helperHandler.Response `json:"created"`
	Rejected []rejectionResponse      `json:"rejected"`
}

type previewRow struct {
	Line int    `json:"line"`
	Name string `json:"name"`
	Age  int    `json:"age"`
	Type string `json:"type"`
}

type previewResponse struct {
	Profile  string              `json:"profile"`
	Rows     []previewRow        `json:"rows"`
	Rejected []rejectionResponse `json:"rejected"`
}

func toRejections(in []importer.Rejection) []rejectionResponse {
	out := make([]rejectionResponse, len(in))
	for i, r := range in {
		out[i] = rejectionResponse(r)
	}

	return out
}

// upload pulls the "file" part out of a multipart form and infers its format
// from the "format" field or, failing that, the file extension.
func upload(w http.ResponseWriter, r *http.Request) (importer.Format, multipart.File, bool) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	format := importer.Format(strings.ToLower(r.FormValue("format")))
	if format == "" {
		format = importer.Format(strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), "."))
	}

	return format, file, true
}

func (h *Handler) importRoster(w http.ResponseWriter, r *http.Request) {
	format, file, ok := upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	summary, err := h.svc.Import(r.Context(), format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, importResponse{
		Profile:  summary.Profile,
		Created:  helperHandler.ToResponseList(summary.Created),
		Rejected: toRejections(summary.Rejected),
	})
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	format, file, ok := upload(w, r)
	if !ok {
		return
	}
	defer file.Close()

	res, err := h.svc.Parse(format, file)
	if err != nil {
		respond.Error(w, err)
		return
	}

	rows := make([]previewRow, len(res.Rows))
	for i, row := range res.Rows {
		rows[i] = previewRow{Line: row.Line, Name: row.Params.Name, Age: row.Params.Age, Type: string(row.Params.Type)}
	}

	respond.JSON(w, http.StatusOK, previewResponse{
		Profile:  res.Profile,
		Rows:     rows,
		Rejected: toRejections(res.Rejected),
	})
}
