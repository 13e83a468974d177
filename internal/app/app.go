// Package app assembles the store and services shared by the API and the TUI.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/audit"
	auditStore "github.com/MrJamesThe3rd/betawi/internal/audit/store"
	"github.com/MrJamesThe3rd/betawi/internal/auth"
	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/config"
	"github.com/MrJamesThe3rd/betawi/internal/contact"
	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/database"
	"github.com/MrJamesThe3rd/betawi/internal/export"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/importer"
	"github.com/MrJamesThe3rd/betawi/internal/message"
	"github.com/MrJamesThe3rd/betawi/internal/report"
	"github.com/MrJamesThe3rd/betawi/internal/review"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

// AuditTrail records changes and replays them per entity or as a feed.
type AuditTrail interface {
	audit.Recorder
	audit.Reader
	audit.Feed
}

type App struct {
	Store *store.Store
	Audit AuditTrail

	Helpers    *helper.Service
	Households *household.Service
	Bookings   *booking.Service
	Contracts  *contract.Service
	Accounts   *account.Service
	Reviews    *review.Service
	Messages   *message.Service
	Contacts   *contact.Service
	Reports    *report.Service
	Importer   *importer.Service
	Export     *export.Service
	Issuer     *auth.Issuer

	db *sql.DB
}

// New opens the audit backend, builds the store and, if configured, loads the
// demo data.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{}

	switch cfg.Audit.Backend {
	case config.AuditPostgres:
		db, err := database.Open(ctx, cfg.ConnectionString(), database.DefaultPool)
		if err != nil {
			return nil, fmt.Errorf("connecting to audit database: %w", err)
		}

		trail := auditStore.New(db)
		if err := trail.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrating audit database: %w", err)
		}

		a.db = db
		a.Audit = trail
	default:
		a.Audit = audit.NewLog()
	}

	s := store.New(a.Audit)
	a.Store = s

	a.Helpers = helper.NewService(s.Helpers)
	a.Households = household.NewService(s.Households)
	a.Bookings = booking.NewService(s.Bookings)
	a.Contracts = contract.NewService(s.Contracts)
	a.Accounts = account.NewService(s.Accounts, s.Transactions)
	a.Reviews = review.NewService(s.Reviews)
	a.Messages = message.NewService(s.Conversations, s.Messages)
	a.Contacts = contact.NewService(s.Contacts)
	a.Reports = report.NewService(report.Sources{
		Helpers:      s.Helpers,
		Households:   s.Households,
		Bookings:     s.Bookings,
		Contracts:    s.Contracts,
		Transactions: s.Transactions,
		Accounts:     s.Accounts,
		Reviews:      s.Reviews,
		Messages:     s.Messages,
		Changes:      a.Audit,
	})
	a.Importer = importer.NewService(a.Helpers)
	a.Export = export.NewService(a.Accounts)
	a.Issuer = auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.TTL)

	if cfg.App.SeedDemo {
		if err := seed.Load(ctx, s); err != nil {
			a.Close()
			return nil, fmt.Errorf("loading demo data: %w", err)
		}
	}

	slog.Info("application ready", "audit", cfg.Audit.Backend, "seeded", cfg.App.SeedDemo)

	return a, nil
}

// Close releases the audit database, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	return a.db.Close()
}
