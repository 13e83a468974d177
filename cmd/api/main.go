package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/betawi/internal/app"
	"github.com/MrJamesThe3rd/betawi/internal/config"
	betawiHttp "github.com/MrJamesThe3rd/betawi/internal/http"
	accountHandler "github.com/MrJamesThe3rd/betawi/internal/http/account"
	auditHandler "github.com/MrJamesThe3rd/betawi/internal/http/audit"
	authHandler "github.com/MrJamesThe3rd/betawi/internal/http/auth"
	bookingHandler "github.com/MrJamesThe3rd/betawi/internal/http/booking"
	contactHandler "github.com/MrJamesThe3rd/betawi/internal/http/contact"
	contractHandler "github.com/MrJamesThe3rd/betawi/internal/http/contract"
	exportHandler "github.com/MrJamesThe3rd/betawi/internal/http/export"
	helperHandler "github.com/MrJamesThe3rd/betawi/internal/http/helper"
	householdHandler "github.com/MrJamesThe3rd/betawi/internal/http/household"
	messageHandler "github.com/MrJamesThe3rd/betawi/internal/http/message"
	reportHandler "github.com/MrJamesThe3rd/betawi/internal/http/report"
	reviewHandler "github.com/MrJamesThe3rd/betawi/internal/http/review"
	rosterHandler "github.com/MrJamesThe3rd/betawi/internal/http/roster"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start application", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	router := betawiHttp.New(betawiHttp.Handlers{
		Auth:       authHandler.NewHandler(a.Issuer),
		Helpers:    helperHandler.NewHandler(a.Helpers),
		Households: householdHandler.NewHandler(a.Households),
		Bookings:   bookingHandler.NewHandler(a.Bookings),
		Contracts:  contractHandler.NewHandler(a.Contracts),
		Accounts:   accountHandler.NewHandler(a.Accounts),
		Reviews:    reviewHandler.NewHandler(a.Reviews),
		Messages:   messageHandler.NewHandler(a.Messages),
		Contacts:   contactHandler.NewHandler(a.Contacts),
		Reports:    reportHandler.NewHandler(a.Reports),
		Audit:      auditHandler.NewHandler(a.Audit, store.Collections()),
		Roster:     rosterHandler.NewHandler(a.Importer),
		Export:     exportHandler.NewHandler(a.Export),
	}, betawiHttp.Options{
		Issuer:      a.Issuer,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "name", cfg.App.Name, "addr", srv.Addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
