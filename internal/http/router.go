package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/betawi/internal/auth"
	"github.com/MrJamesThe3rd/betawi/internal/http/account"
	"github.com/MrJamesThe3rd/betawi/internal/http/audit"
	authHandler "github.com/MrJamesThe3rd/betawi/internal/http/auth"
	"github.com/MrJamesThe3rd/betawi/internal/http/booking"
	"github.com/MrJamesThe3rd/betawi/internal/http/contact"
	"github.com/MrJamesThe3rd/betawi/internal/http/contract"
	"github.com/MrJamesThe3rd/betawi/internal/http/export"
	"github.com/MrJamesThe3rd/betawi/internal/http/helper"
	"github.com/MrJamesThe3rd/betawi/internal/http/household"
	"github.com/MrJamesThe3rd/betawi/internal/http/message"
	"github.com/MrJamesThe3rd/betawi/internal/http/report"
	"github.com/MrJamesThe3rd/betawi/internal/http/review"
	"github.com/MrJamesThe3rd/betawi/internal/http/roster"
)

type Handlers struct {
	Auth       *authHandler.Handler
	Helpers    *helper.Handler
	Households *household.Handler
	Bookings   *booking.Handler
	Contracts  *contract.Handler
	Accounts   *account.Handler
	Reviews    *review.Handler
	Messages   *message.Handler
	Contacts   *contact.Handler
	Reports    *report.Handler
	Audit      *audit.Handler
	Roster     *roster.Handler
	Export     *export.Handler
}

type Options struct {
	Issuer      *auth.Issuer
	CORSOrigins []string
}

func New(h Handlers, opts Options) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", h.Auth.Routes)

		r.Group(func(r chi.Router) {
			r.Use(opts.Issuer.Middleware)

			r.Group(func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))

				r.Route("/helpers", h.Helpers.Routes)
				r.Route("/households", h.Households.Routes)
				r.Route("/bookings", h.Bookings.Routes)
				r.Route("/contracts", h.Contracts.Routes)
				r.Route("/accounts", h.Accounts.Routes)
				r.Route("/transactions", h.Accounts.LedgerRoutes)
				r.Route("/reviews", h.Reviews.Routes)
				r.Route("/conversations", h.Messages.ConversationRoutes)
				r.Route("/messages", h.Messages.Routes)
				r.Route("/contacts", h.Contacts.Routes)
			})

			r.Route("/metrics", h.Reports.Routes)
			r.Route("/audit", h.Audit.Routes)
			r.Route("/roster", h.Roster.Routes)
			r.Route("/export", h.Export.Routes)
		})
	})

	return router
}
