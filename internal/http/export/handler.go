package export

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/export"
	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/ledger", h.ledger)
}

func (h *Handler) ledger(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}

	f := account.TransactionFilter{
		Type:     respond.Query[ledger.Type](r, "type"),
		Status:   respond.Query[ledger.Status](r, "status"),
		HelperID: respond.QueryInt(r, "helper_id"),
	}

	// Buffered so a failure can still be reported with a proper status.
	var buf bytes.Buffer
	if err := h.svc.Write(r.Context(), &buf, format, f); err != nil {
		respond.Error(w, err)
		return
	}

	filename := fmt.Sprintf("ledger-%s.%s", time.Now().Format("2006-01-02"), format)

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	_, _ = buf.WriteTo(w)
}
