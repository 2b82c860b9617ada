// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sanskar1309/fitnest-fullstack/health"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/models"
)

type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// BMI handles POST /api/v1/bmi
func (h *CalculatorHandler) BMI(w http.ResponseWriter, r *http.Request) {
	var req models.BMIRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	result, err := health.BMI(health.Body{Height: req.Height, Weight: req.Weight, Unit: req.Unit})
	if err != nil {
		calculatorError(w, "bmi", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// BMR handles POST /api/v1/bmr
func (h *CalculatorHandler) BMR(w http.ResponseWriter, r *http.Request) {
	var req models.BMRRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	body := health.Body{Height: req.Height, Weight: req.Weight, Unit: req.Unit}
	result, err := health.BMR(body, req.Age, req.Gender, req.ActivityLevel)
	if err != nil {
		calculatorError(w, "bmr", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

// Nutrition handles POST /api/v1/nutrition
func (h *CalculatorHandler) Nutrition(w http.ResponseWriter, r *http.Request) {
	var req models.NutritionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	body := health.Body{Height: req.Height, Weight: req.Weight, Unit: req.Unit}
	result, err := health.Nutrition(body, req.Age, req.Gender, req.Activity, req.Goal)
	if err != nil {
		calculatorError(w, "nutrition", err)
		return
	}
	middleware.JSONResponse(w, http.StatusOK, result)
}

func calculatorError(w http.ResponseWriter, calculator string, err error) {
	if errors.Is(err, health.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), health.ErrInvalidInput.Error()+": ")
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}
	slog.Error("calculator failed", "calculator", calculator, "error", err)
	middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
}
