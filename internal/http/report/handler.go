package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/http/respond"
	"github.com/MrJamesThe3rd/betawi/internal/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

const (
	defaultTop   = 4
	defaultLimit = 10
	maxLimit     = 100
)

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.metrics)
	r.Get("/analytics", h.analytics)
	r.Get("/activity", h.activity)
}

type metricsResponse struct {
	PlatformBalance int64   `json:"platform_balance"`
	TotalIncome     int64   `json:"total_income"`
	TotalCommission int64   `json:"total_commission"`
	TotalPayouts    int64   `json:"total_payouts"`
	PendingPayouts  int64   `json:"pending_payouts"`
	AverageRating   float64 `json:"average_rating"`

	Helpers           int `json:"helpers"`
	VerifiedHelpers   int `json:"verified_helpers"`
	Households        int `json:"households"`
	Bookings          int `json:"bookings"`
	PendingBookings   int `json:"pending_bookings"`
	CompletedBookings int `json:"completed_bookings"`
	ActiveContracts   int `json:"active_contracts"`
	Reviews           int `json:"reviews"`
	FlaggedReviews    int `json:"flagged_reviews"`
	UnreadMessages    int `json:"unread_messages"`
}

func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Metrics(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, metricsResponse(m))
}

type monthResponse struct {
	Month          string  `json:"month"`
	Bookings       int     `json:"bookings"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	CompletionRate float64 `json:"completion_rate"`
}

type helperRankResponse struct {
	HelperID int    `json:"helper_id,omitempty"`
	Name     string `json:"name"`
	Bookings int    `json:"bookings"`
}

type serviceShareResponse struct {
	ServiceType string  `json:"service_type"`
	Bookings    int     `json:"bookings"`
	Percent     float64 `json:"percent"`
}

type analyticsResponse struct {
	Bookings       int                    `json:"bookings"`
	Completed      int                    `json:"completed"`
	CompletionRate float64                `json:"completion_rate"`
	Trend          []monthResponse        `json:"trend"`
	TopHelpers     []helperRankResponse   `json:"top_helpers"`
	ServiceMix     []serviceShareResponse `json:"service_mix"`
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	top := defaultTop
	if n := respond.QueryInt(r, "top"); n != nil {
		top = *n
	}

	a, err := h.svc.Analytics(r.Context(), top)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := analyticsResponse{
		Bookings:       a.Bookings,
		Completed:      a.Completed,
		CompletionRate: a.CompletionRate,
		Trend:          make([]monthResponse, len(a.Trend)),
		TopHelpers:     make([]helperRankResponse, len(a.TopHelpers)),
		ServiceMix:     make([]serviceShareResponse, len(a.ServiceMix)),
	}

	for i, m := range a.Trend {
		resp.Trend[i] = monthResponse{
			Month:          m.Month.Format("2006-01"),
			Bookings:       m.Bookings,
			Completed:      m.Completed,
			Pending:        m.Pending,
			CompletionRate: m.CompletionRate,
		}
	}

	for i, rank := range a.TopHelpers {
		resp.TopHelpers[i] = helperRankResponse(rank)
	}

	for i, share := range a.ServiceMix {
		resp.ServiceMix[i] = serviceShareResponse(share)
	}

	respond.JSON(w, http.StatusOK, resp)
}

type activityResponse struct {
	At         time.Time `json:"at"`
	Level      string    `json:"level"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Collection string    `json:"collection"`
	EntityID   int       `json:"entity_id"`
}

func (h *Handler) activity(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if n := respond.QueryInt(r, "limit"); n != nil {
		limit = min(max(*n, 1), maxLimit)
	}

	feed, err := h.svc.Activity(r.Context(), limit)
	if err != nil {
		respond.Error(w, err)
		return
	}

	resp := make([]activityResponse, len(feed))
	for i, a := range feed {
		resp[i] = activityResponse{
			At:         a.At,
			Level:      string(a.Level),
			Title:      a.Title,
			Message:    a.Message,
			Collection: a.Collection,
			EntityID:   a.EntityID,
		}
	}

	respond.JSON(w, http.StatusOK, resp)
}
