package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

type server struct {
	t     *testing.T
	h     http.Handler
	token string
}

func newServer(t *testing.T) *server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Audit.Backend = config.AuditMemory
	cfg.App.SeedDemo = true
	cfg.Auth.Secret = "test-secret"
	cfg.Auth.TTL = time.Hour

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)

	h := betawiHttp.New(betawiHttp.Handlers{
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
	}, betawiHttp.Options{Issuer: a.Issuer, CORSOrigins: []string{"http://localhost:3000"}})

	s := &server{t: t, h: h}

	rec := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"admin@betawi.et","password":"secret"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	s.token = login.Token

	return s
}

func (s *server) do(method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}

	if s.token != "" {
		r.Header.Set("Authorization", "Bearer "+s.token)
	}

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, r)

	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestRouter_Auth(t *testing.T) {
	s := newServer(t)

	bad := s.do(http.MethodPost, "/api/v1/auth/login", `{"email":"admin","password":"x"}`)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	s.token = ""
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/helpers", "").Code)

	s.token = "not-a-jwt"
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/v1/helpers", "").Code)
}

func TestRouter_Helpers(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/v1/helpers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]helperHandler.Response](t, rec), 4)

	rec = s.do(http.MethodPost, "/api/v1/helpers", `{"name":"Selam","age":24,"type":"Nanny"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	created := decode[helperHandler.Response](t, rec)
	assert.Equal(t, 5, created.ID)
	assert.False(t, created.Verified)

	rec = s.do(http.MethodPost, "/api/v1/helpers", `{"name":"","age":24,"type":"Nanny"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/helpers/99", "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/helpers/abc", "").Code)
}

func TestRouter_BookingTransitions(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPatch, "/api/v1/bookings/2/status", `{"status":"Approved"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPatch, "/api/v1/bookings/3/status", `{"status":"Approved"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"status":"Approved"`)

	rec = s.do(http.MethodGet, "/api/v1/bookings?status=Approved", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 3)
}

func TestRouter_PayoutAndMetrics(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/v1/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)

	before := decode[map[string]any](t, rec)
	assert.EqualValues(t, 800, before["platform_balance"])

	assert.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/accounts/1/payout", "").Code)
	assert.Equal(t, http.StatusConflict, s.do(http.MethodPost, "/api/v1/accounts/1/payout", "").Code)

	rec = s.do(http.MethodGet, "/api/v1/transactions?type=Payout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]map[string]any](t, rec), 3)
}

func TestRouter_AnalyticsAndActivity(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/api/v1/bookings", `{"household_id":2,"helper_id":2,"start_date":"2025-02-03","end_date":"2025-02-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/bookings", `{"household_id":2,"helper_id":2,"start_date":"2025-02-03","end_date":"2025-02-04"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"service_type":"Childcare"`)

	rec = s.do(http.MethodGet, "/api/v1/metrics/analytics?top=1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	analytics := decode[struct {
		Bookings int `json:"bookings"`
		Trend    []struct {
			Month    string `json:"month"`
			Bookings int    `json:"bookings"`
		} `json:"trend"`
		TopHelpers []struct {
			Name     string `json:"name"`
			Bookings int    `json:"bookings"`
		} `json:"top_helpers"`
		ServiceMix []struct {
			ServiceType string `json:"service_type"`
			Bookings    int    `json:"bookings"`
		} `json:"service_mix"`
	}](t, rec)

	assert.Equal(t, 6, analytics.Bookings)
	require.Len(t, analytics.Trend, 2)
	assert.Equal(t, "2025-02", analytics.Trend[1].Month)
	require.Len(t, analytics.TopHelpers, 2)
	assert.Equal(t, "Fatima Ali", analytics.TopHelpers[0].Name)
	assert.Equal(t, 3, analytics.TopHelpers[0].Bookings)
	assert.Equal(t, "Others", analytics.TopHelpers[1].Name)
	assert.Equal(t, "Childcare", analytics.ServiceMix[0].ServiceType)
	assert.Equal(t, 2, analytics.ServiceMix[0].Bookings)

	rec = s.do(http.MethodGet, "/api/v1/metrics/activity?limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	feed := decode[[]map[string]any](t, rec)
	require.Len(t, feed, 1)
	assert.Equal(t, "New Booking", feed[0]["title"])
	assert.Equal(t, "info", feed[0]["level"])
	assert.EqualValues(t, 6, feed[0]["entity_id"])
}

func TestRouter_Messages(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodPost, "/api/v1/conversations/1/messages", `{"body":"   ","recipient":"Abebe"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/conversations/1/messages", `{"body":"See you Monday","recipient":"Abebe"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"sender":"Admin"`)

	rec = s.do(http.MethodGet, "/api/v1/conversations/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"last_message":"See you Monday"`)
}

func TestRouter_Audit(t *testing.T) {
	s := newServer(t)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/v1/helpers/3/verify", "").Code)

	rec := s.do(http.MethodGet, "/api/v1/audit/helpers/3", "")
	require.Equal(t, http.StatusOK, rec.Code)

	changes := decode[[]map[string]any](t, rec)
	require.Len(t, changes, 2)
	assert.Equal(t, "create", changes[0]["op"])
	assert.Equal(t, "update", changes[1]["op"])

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/v1/audit/invoices/1", "").Code)
}

func TestRouter_Export(t *testing.T) {
	s := newServer(t)

	rec := s.do(http.MethodGet, "/api/v1/export/ledger?format=csv&type=Income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 4)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/v1/export/ledger?format=pdf", "").Code)
}

func TestRouter_RosterImport(t *testing.T) {
	s := newServer(t)

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "roster.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte("Name,Age,Type\nHanna,27,Live-in\n,30,Nanny\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/api/v1/roster", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	r.Header.Set("Authorization", "Bearer "+s.token)

	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, r)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Profile  string                   `json:"profile"`
		Created  []helperHandler.Response `json:"created"`
		Rejected []struct {
			Line   int    `json:"line"`
			Reason string `json:"reason"`
		} `json:"rejected"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "console", resp.Profile)
	require.Len(t, resp.Created, 1)
	assert.Equal(t, "Hanna", resp.Created[0].Name)
	require.Len(t, resp.Rejected, 1)
	assert.Equal(t, 3, resp.Rejected[0].Line)
	assert.Equal(t, "missing name", resp.Rejected[0].Reason)
}
