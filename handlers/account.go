// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sanskar1309/fitnest-fullstack/account"
	"github.com/sanskar1309/fitnest-fullstack/auth"
	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/models"
	"github.com/sanskar1309/fitnest-fullstack/supabase"
)

const (
	msgAuthUnavailable   = "Authentication service unavailable"
	msgAuthNotConfigured = "Authentication service is not configured"
	msgAccountExists     = "An account with this email already exists. Please sign in instead."
)

// AuthService is the hosted auth API used with the anon key
type AuthService interface {
	SignUp(ctx context.Context, email, password string, data map[string]any, redirectTo string) (*supabase.AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*supabase.Session, error)
	SignOut(ctx context.Context, token string) error
	Recover(ctx context.Context, email, redirectTo string) error
	UpdateUser(ctx context.Context, token string, attrs supabase.UserAttributes) (*supabase.User, error)
	GetUser(ctx context.Context, token string) (*supabase.User, error)
}

// UserDirectory answers admin lookups with the service-role key
type UserDirectory interface {
	UserExists(ctx context.Context, email string) (bool, error)
}

type AccountHandler struct {
	auth    AuthService
	users   UserDirectory
	siteURL string
}

// NewAccountHandler accepts nil services; the routes needing them answer 503
func NewAccountHandler(authSvc AuthService, users UserDirectory, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{
		auth:    authSvc,
		users:   users,
		siteURL: strings.TrimRight(cfg.SiteURL, "/"),
	}
}

// RequireUser wraps next with bearer-token verification
func (h *AccountHandler) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	if h.auth == nil {
		return func(w http.ResponseWriter, r *http.Request) {
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		}
	}
	return auth.RequireUser(h.auth, next)
}

// authError relays 4xx answers from the auth service and hides the rest
func authError(w http.ResponseWriter, op string, err error) {
	var apiErr *supabase.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		middleware.ErrorResponse(w, apiErr.StatusCode, apiErr.Message)
		return
	}
	slog.Error("auth service call failed", "op", op, "error", err)
	middleware.ErrorResponse(w, http.StatusBadGateway, msgAuthUnavailable)
}

// CheckUser handles POST /api/check-user
func (h *AccountHandler) CheckUser(w http.ResponseWriter, r *http.Request) {
	var req models.CheckUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email := account.NormalizeEmail(req.Email)
	if email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, account.ErrEmailRequired.Error())
		return
	}

	if h.users == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		return
	}

	exists, err := h.users.UserExists(r.Context(), email)
	if err != nil {
		slog.Error("failed to check user existence", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check user existence")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CheckUserResponse{Exists: exists})
}

// SignUp handles POST /api/auth/signup
func (h *AccountHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		return
	}

	var req models.SignUpRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	email, err := account.ValidateEmail(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := account.CheckPassword(req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Without the admin key the auth service reports duplicates itself
	if h.users != nil {
		exists, err := h.users.UserExists(r.Context(), email)
		if err != nil {
			slog.Error("failed to check user existence", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to check user existence")
			return
		}
		if exists {
			middleware.ErrorResponse(w, http.StatusConflict, msgAccountExists)
			return
		}
	}

	var data map[string]any
	if name := strings.TrimSpace(req.Name); name != "" {
		data = map[string]any{"name": name}
	}

	res, err := h.auth.SignUp(r.Context(), email, strings.TrimSpace(req.Password), data, h.siteURL+"/auth/callback")
	if err != nil {
		authError(w, "signup", err)
		return
	}

	slog.Info("user signed up", "email", email)
	middleware.JSONResponse(w, http.StatusCreated, res)
}

// Login handles POST /api/auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		return
	}

	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Signup stores the trimmed password, so login must send the same
	email := account.NormalizeEmail(req.Email)
	password := strings.TrimSpace(req.Password)
	if email == "" || password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	session, err := h.auth.SignIn(r.Context(), email, password)
	if err != nil {
		authError(w, "login", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// Logout handles POST /api/auth/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), auth.TokenFromContext(r.Context())); err != nil {
		authError(w, "logout", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetPassword handles POST /api/auth/reset-password
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if h.auth == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, msgAuthNotConfigured)
		return
	}

	var req models.ResetPasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	email, err := account.ValidateEmail(req.Email)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.auth.Recover(r.Context(), email, h.siteURL+"/auth/reset-password"); err != nil {
		authError(w, "recover", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Check your email for a password reset link.",
	})
}

// UpdatePassword handles POST /api/auth/update-password
func (h *AccountHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	var req models.UpdatePasswordRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Password == "" || req.ConfirmPassword == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Both password fields are required.")
		return
	}
	if req.Password != req.ConfirmPassword {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please make sure both passwords are the same.")
		return
	}
	if err := account.CheckPassword(req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	token := auth.TokenFromContext(r.Context())
	attrs := supabase.UserAttributes{Password: strings.TrimSpace(req.Password)}
	if _, err := h.auth.UpdateUser(r.Context(), token, attrs); err != nil {
		authError(w, "update password", err)
		return
	}

	if user := auth.UserFromContext(r.Context()); user != nil {
		slog.Info("password updated", "user_id", user.ID)
	}
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: "Your password has been updated. You can now log in with your new password.",
	})
}

// Me handles GET /api/auth/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, auth.UserFromContext(r.Context()))
}

// PasswordStrength handles POST /api/auth/password-strength
func (h *AccountHandler) PasswordStrength(w http.ResponseWriter, r *http.Request) {
	var req models.PasswordStrengthRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, account.ValidatePassword(req.Password))
}
