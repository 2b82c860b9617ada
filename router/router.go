// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/fallback"
	"github.com/sanskar1309/fitnest-fullstack/handlers"
	"github.com/sanskar1309/fitnest-fullstack/mealplan"
	"github.com/sanskar1309/fitnest-fullstack/metrics"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/store"
	"github.com/sanskar1309/fitnest-fullstack/supabase"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(store.New(db), fallback.Loader{FS: os.DirFS(cfg.FallbackDir)}, cfg)
	calculatorHandler := handlers.NewCalculatorHandler()
	mealPlanHandler := handlers.NewMealPlanHandler(mealplan.New(mealplan.Config{
		BaseURL: cfg.OpenRouterURL,
		APIKey:  cfg.OpenRouterAPIKey,
		SiteURL: cfg.SiteURL,
		Models:  cfg.MealPlanModels,
	}))
	accountHandler := newAccountHandler(cfg)
	mealPlanLimiter := middleware.NewRateLimiter(cfg.MealPlanRate, cfg.TrustProxy)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", metrics.Handler())

	// Catalog (public, read-only)
	route(mux, "GET", "/api/v1", catalogHandler.GetIndex)
	route(mux, "GET", "/api/v1/categories", catalogHandler.GetCategories)
	route(mux, "GET", "/api/v1/poses", catalogHandler.GetPoses)
	route(mux, "GET", "/api/v1/meditation", catalogHandler.GetMeditation)
	route(mux, "GET", "/api/v1/moods", catalogHandler.GetMoods)

	// Calculators
	route(mux, "POST", "/api/v1/bmi", calculatorHandler.BMI)
	route(mux, "POST", "/api/v1/bmr", calculatorHandler.BMR)
	route(mux, "POST", "/api/v1/nutrition", calculatorHandler.Nutrition)

	// Meal planner (rate limited per client IP)
	route(mux, "POST", "/api/meal-planner", mealPlanLimiter.Limit(mealPlanHandler.Generate))

	// Accounts
	route(mux, "POST", "/api/check-user", accountHandler.CheckUser)
	route(mux, "POST", "/api/auth/signup", accountHandler.SignUp)
	route(mux, "POST", "/api/auth/login", accountHandler.Login)
	route(mux, "POST", "/api/auth/logout", accountHandler.RequireUser(accountHandler.Logout))
	route(mux, "POST", "/api/auth/reset-password", accountHandler.ResetPassword)
	route(mux, "POST", "/api/auth/update-password", accountHandler.RequireUser(accountHandler.UpdatePassword))
	route(mux, "GET", "/api/auth/me", accountHandler.RequireUser(accountHandler.Me))
	route(mux, "POST", "/api/auth/password-strength", accountHandler.PasswordStrength)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("fitnest API v1"))
	})

	return mux
}

// route registers handler for method and answers every other method with a JSON 405
func route(mux *http.ServeMux, method, path string, handler http.HandlerFunc) {
	mux.HandleFunc(method+" "+path, middleware.WithLogging(handler))
	mux.HandleFunc(path, middleware.WithLogging(middleware.MethodNotAllowed))
}

// newAccountHandler wires the hosted auth clients that are configured
func newAccountHandler(cfg cliparse.Config) *handlers.AccountHandler {
	var (
		authSvc handlers.AuthService
		users   handlers.UserDirectory
	)

	if cfg.AuthConfigured() {
		client, err := supabase.New(supabase.Config{URL: cfg.SupabaseURL, APIKey: cfg.SupabaseAnonKey})
		if err != nil {
			slog.Error("auth client disabled", "error", err)
		} else {
			authSvc = client.Auth()
		}
	} else {
		slog.Warn("auth service not configured; account endpoints will answer 503")
	}

	if cfg.AdminConfigured() {
		admin, err := supabase.New(supabase.Config{URL: cfg.SupabaseURL, APIKey: cfg.SupabaseServiceKey})
		if err != nil {
			slog.Error("auth admin client disabled", "error", err)
		} else {
			users = admin.Admin()
		}
	}

	return handlers.NewAccountHandler(authSvc, users, cfg)
}
