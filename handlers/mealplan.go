// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sanskar1309/fitnest-fullstack/mealplan"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
)

// MealPlanner generates a meal plan as raw JSON
type MealPlanner interface {
	Configured() bool
	Generate(ctx context.Context, req *mealplan.Request) ([]byte, error)
}

type MealPlanHandler struct {
	planner MealPlanner
}

func NewMealPlanHandler(planner MealPlanner) *MealPlanHandler {
	return &MealPlanHandler{planner: planner}
}

// Generate handles POST /api/meal-planner
func (h *MealPlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	if h.planner == nil || !h.planner.Configured() {
		middleware.JSONResponse(w, http.StatusServiceUnavailable, map[string]string{
			"message": "Meal planner is not configured.",
		})
		return
	}

	body, err := middleware.ReadBody(r)
	if err != nil && !errors.Is(err, middleware.ErrEmptyBody) {
		middleware.JSONResponse(w, http.StatusBadRequest, map[string]string{"message": "Invalid JSON"})
		return
	}

	req, err := mealplan.ParseRequest(body)
	if err != nil {
		var verr *mealplan.ValidationError
		if errors.As(err, &verr) {
			middleware.JSONResponse(w, http.StatusBadRequest, map[string]string{"message": verr.Message})
			return
		}
		middleware.JSONResponse(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	plan, err := h.planner.Generate(r.Context(), req)
	if err != nil {
		var (
			perr *mealplan.ProviderError
			xerr *mealplan.ExhaustedError
		)
		switch {
		case errors.As(err, &perr):
			slog.Warn("meal planner provider error", "status", perr.StatusCode)
			writeRawJSON(w, perr.StatusCode, perr.Body)
		case errors.As(err, &xerr):
			slog.Warn("meal planner exhausted all models")
			middleware.JSONResponse(w, http.StatusServiceUnavailable, map[string]any{
				"message": mealplan.MsgExhausted,
				"error":   xerr.LastError,
			})
		default:
			slog.Error("meal planner failed", "error", err)
			middleware.JSONResponse(w, http.StatusInternalServerError, map[string]string{
				"message": "Internal server error.",
			})
		}
		return
	}

	writeRawJSON(w, http.StatusOK, plan)
}

func writeRawJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
