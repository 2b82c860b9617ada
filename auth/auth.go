// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/supabase"
)

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token format")
)

// UserVerifier resolves an access token to the user who owns it
type UserVerifier interface {
	GetUser(ctx context.Context, token string) (*supabase.User, error)
}

type contextKey int

const (
	userKey contextKey = iota
	tokenKey
)

// BearerToken extracts the token from an "Authorization: Bearer" header
func BearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", ErrMissingToken
	}

	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrMissingToken
	}
	return token, nil
}

// RequireUser rejects requests without a token the verifier accepts.
// The user and token are stored in the request context.
func RequireUser(verifier UserVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := BearerToken(r)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, err := verifier.GetUser(r.Context(), token)
		if err != nil {
			// Only a 4xx from the auth service says the token is bad
			var apiErr *supabase.APIError
			if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
				slog.Info("token rejected", "path", r.URL.Path, "error", err)
				middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
				return
			}
			slog.Error("token verification failed", "path", r.URL.Path, "error", err)
			middleware.ErrorResponse(w, http.StatusBadGateway, "Authentication service unavailable")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		ctx = context.WithValue(ctx, tokenKey, token)
		next(w, r.WithContext(ctx))
	}
}

// UserFromContext returns the user stored by RequireUser, or nil
func UserFromContext(ctx context.Context) *supabase.User {
	user, _ := ctx.Value(userKey).(*supabase.User)
	return user
}

// TokenFromContext returns the bearer token stored by RequireUser
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey).(string)
	return token
}
