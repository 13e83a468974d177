// Package respond holds the JSON and error plumbing shared by the handlers.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error maps a service error onto its HTTP status. Anything unclassified is
// logged and hidden behind a 500.
func Error(w http.ResponseWriter, err error) {
	var status int

	switch {
	case errors.Is(err, errs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidTransition), errors.Is(err, errs.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrUnauthorized):
		status = http.StatusUnauthorized
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	http.Error(w, err.Error(), status)
}

// Decode reads a JSON body into v, answering 400 itself on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ID parses the {id} URL parameter, answering 400 itself on failure.
func ID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}

	return id, true
}

// QueryInt returns a pointer to an integer query parameter, nil when absent
// or malformed.
func QueryInt(r *http.Request, key string) *int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}

	return &n
}

// QueryBool returns a pointer to a boolean query parameter, nil when absent
// or malformed.
func QueryBool(r *http.Request, key string) *bool {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}

	return &b
}

// Query returns a pointer to a string-typed query parameter, nil when absent.
func Query[T ~string](r *http.Request, key string) *T {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil
	}

	return new(T(s))
}
