// Package auth issues and checks the console's bearer tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/betawi/internal/errs"
)

const issuer = "betawi"

type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Token is a signed session for one admin.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Login accepts any address containing '@' and any non-empty password. There
// is no user directory behind the console.
func (i *Issuer) Login(email, password string) (*Token, error) {
	email = strings.TrimSpace(email)

	switch {
	case email == "":
		return nil, errs.Required("email")
	case !strings.Contains(email, "@"):
		return nil, errs.Invalid("email", "must be an email address")
	case password == "":
		return nil, errs.Required("password")
	}

	now := i.now()
	expires := now.Add(i.ttl)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &Token{Value: signed, ExpiresAt: expires}, nil
}

func (i *Issuer) Verify(token string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrUnauthorized, err)
	}

	return claims, nil
}

type ctxKey struct{}

// Middleware rejects requests without a valid bearer token and stores the
// claims on the request context.
func (i *Issuer) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := i.Verify(raw)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

// FromContext returns the claims stored by Middleware.
func FromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(ctxKey{}).(*Claims)
	if !ok {
		return nil, errors.New("no claims in context")
	}

	return claims, nil
}
