// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/metrics"
	"github.com/sanskar1309/fitnest-fullstack/middleware"
	"github.com/sanskar1309/fitnest-fullstack/models"
)

// CatalogStore reads the yoga and meditation catalog
type CatalogStore interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	FindCategory(ctx context.Context, q models.CatalogQuery) (*models.Category, error)
	FindCategoryByLevel(ctx context.Context, id int64, level string) (*models.Category, error)
	ListPoses(ctx context.Context) ([]models.Pose, error)
	FindPose(ctx context.Context, q models.CatalogQuery) (*models.Pose, error)
	ListPosesByLevel(ctx context.Context, level string) ([]models.Pose, error)
	ListMeditation(ctx context.Context) ([]models.MeditationCategory, error)
	ListMoods(ctx context.Context) ([]models.Mood, error)
}

// FallbackSource serves meditation and mood data when the store fails
type FallbackSource interface {
	Meditation() ([]models.MeditationCategory, error)
	Moods() ([]models.Mood, error)
}

type CatalogHandler struct {
	store    CatalogStore
	fallback FallbackSource
	baseURL  string
}

func NewCatalogHandler(store CatalogStore, fallback FallbackSource, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{
		store:    store,
		fallback: fallback,
		baseURL:  strings.TrimRight(cfg.SiteURL, "/") + "/api/v1",
	}
}

// GetIndex handles GET /api/v1
func (h *CatalogHandler) GetIndex(w http.ResponseWriter, r *http.Request) {
	b := h.baseURL
	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"base":                 b,
		"categories":           b + "/categories",
		"category-by-id":       b + "/categories?id=value",
		"category-by-name":     b + "/categories?name=value",
		"category-by-id-level": b + "/categories?id=value&level=value",
		"poses":                b + "/poses",
		"pose-by-id":           b + "/poses?id=value",
		"pose-by-name":         b + "/poses?name=value",
		"poses-by-level":       b + "/poses?level=beginner",
		"meditation":           b + "/meditation",
		"moods":                b + "/moods",
	})
}

// parseCatalogQuery reads id, name and level. Other parameters are ignored.
func parseCatalogQuery(r *http.Request) (models.CatalogQuery, string) {
	values := r.URL.Query()
	q := models.CatalogQuery{
		Name:  strings.TrimSpace(values.Get("name")),
		Level: strings.TrimSpace(values.Get("level")),
	}

	if raw := strings.TrimSpace(values.Get("id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id < 1 {
			return q, "id must be a positive integer"
		}
		q.ID = id
	}
	return q, ""
}

// GetCategories handles GET /api/v1/categories
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	q, msg := parseCatalogQuery(r)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var (
		data any
		err  error
	)
	switch {
	case q.Empty():
		data, err = h.store.ListCategories(r.Context())
	case q.Level != "":
		if q.ID == 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "level requires id")
			return
		}
		var cat *models.Category
		cat, err = h.store.FindCategoryByLevel(r.Context(), q.ID, q.Level)
		if err == nil && cat == nil {
			middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
			return
		}
		data = cat
	default:
		var cat *models.Category
		cat, err = h.store.FindCategory(r.Context(), q)
		if err == nil && cat == nil {
			middleware.ErrorResponse(w, http.StatusNotFound, "Category not found")
			return
		}
		data = cat
	}

	if err != nil {
		slog.Error("failed to fetch categories", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	middleware.JSONResponse(w, http.StatusOK, data)
}

// GetPoses handles GET /api/v1/poses
func (h *CatalogHandler) GetPoses(w http.ResponseWriter, r *http.Request) {
	q, msg := parseCatalogQuery(r)
	if msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	var (
		data any
		err  error
	)
	switch {
	case q.Empty():
		data, err = h.store.ListPoses(r.Context())
	case q.Level != "":
		data, err = h.store.ListPosesByLevel(r.Context(), q.Level)
	default:
		var pose *models.Pose
		pose, err = h.store.FindPose(r.Context(), q)
		if err == nil && pose == nil {
			middleware.ErrorResponse(w, http.StatusNotFound, "Pose not found")
			return
		}
		data = pose
	}

	if err != nil {
		slog.Error("failed to fetch poses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, data)
}

// GetMeditation handles GET /api/v1/meditation
func (h *CatalogHandler) GetMeditation(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListMeditation(r.Context())
	if err != nil {
		slog.Error("failed to fetch meditation data, using fallback", "error", err)
		metrics.RecordCatalogFallback("meditation")

		data, err = h.fallback.Meditation()
		if err != nil {
			slog.Error("failed to load fallback meditation data", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.Envelope{
		Metadata: models.CatalogMetadata(),
		Data:     data,
	})
}

// GetMoods handles GET /api/v1/moods
func (h *CatalogHandler) GetMoods(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.ListMoods(r.Context())
	if err != nil {
		slog.Error("failed to fetch moods, using fallback", "error", err)
		metrics.RecordCatalogFallback("moods")

		data, err = h.fallback.Moods()
		if err != nil {
			slog.Error("failed to load fallback moods", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal server error")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.Envelope{
		Metadata: models.CatalogMetadata(),
		Data:     data,
	})
}
