// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/sanskar1309/fitnest-fullstack/fallback"
	"github.com/sanskar1309/fitnest-fullstack/models"
	"github.com/sanskar1309/fitnest-fullstack/store"
	"github.com/sanskar1309/fitnest-fullstack/testutil"
)

var errDown = errors.New("database is down")

// failingStore fails every query
type failingStore struct{}

func (failingStore) ListCategories(context.Context) ([]models.Category, error) { return nil, errDown }
func (failingStore) FindCategory(context.Context, models.CatalogQuery) (*models.Category, error) {
	return nil, errDown
}
func (failingStore) FindCategoryByLevel(context.Context, int64, string) (*models.Category, error) {
	return nil, errDown
}
func (failingStore) ListPoses(context.Context) ([]models.Pose, error) { return nil, errDown }
func (failingStore) FindPose(context.Context, models.CatalogQuery) (*models.Pose, error) {
	return nil, errDown
}
func (failingStore) ListPosesByLevel(context.Context, string) ([]models.Pose, error) {
	return nil, errDown
}
func (failingStore) ListMeditation(context.Context) ([]models.MeditationCategory, error) {
	return nil, errDown
}
func (failingStore) ListMoods(context.Context) ([]models.Mood, error) { return nil, errDown }

var fallbackFiles = fstest.MapFS{
	fallback.MeditationFile: {Data: []byte(`{"categories": [
		{"id": 9, "category_name": "Static", "category_description": "From file",
		 "practices": [{"id": 90, "category_id": 9, "english_name": "Candle Gazing", "url_png": "https://cdn.example/candle.png"}]}
	]}`)},
	fallback.MoodsFile: {Data: []byte(`{"moods": [
		{"mood": "Restless", "description": "Cannot settle", "recommended_practices": [90]}
	]}`)},
}

func fallbackLoader() fallback.Loader {
	return fallback.Loader{FS: fallbackFiles}
}

func setupCatalogHandler(t *testing.T) *CatalogHandler {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	t.Cleanup(func() { conn.Close() })
	testutil.SeedCatalog(t, conn)
	return NewCatalogHandler(store.New(conn), fallback.Loader{FS: fallbackFiles}, testutil.GetTestConfig())
}

func TestGetIndex(t *testing.T) {
	handler := setupCatalogHandler(t)

	w := httptest.NewRecorder()
	handler.GetIndex(w, testutil.MakeRequest("GET", "/api/v1", nil, nil))

	testutil.AssertStatus(t, w, http.StatusOK)

	var index map[string]string
	testutil.AssertJSON(t, w, &index)

	if index["base"] != "http://localhost:3000/api/v1" {
		t.Errorf("Unexpected base: %q", index["base"])
	}
	if index["category-by-id-level"] != "http://localhost:3000/api/v1/categories?id=value&level=value" {
		t.Errorf("Unexpected category-by-id-level: %q", index["category-by-id-level"])
	}
	if len(index) != 11 {
		t.Errorf("Expected 11 entries, got %d", len(index))
	}
}

func TestGetCategories(t *testing.T) {
	handler := setupCatalogHandler(t)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantName   string
		wantCount  int
	}{
		{"full list", "", http.StatusOK, "", 3},
		{"unknown params ignored", "?foo=bar", http.StatusOK, "", 3},
		{"by id", "?id=2", http.StatusOK, "Standing", 0},
		{"by name", "?name=balancing", http.StatusOK, "Balancing", 0},
		{"by id and level", "?id=1&level=beginner", http.StatusOK, "Balancing", 0},
		{"level without id", "?level=beginner", http.StatusBadRequest, "", 0},
		{"non-integer id", "?id=abc", http.StatusBadRequest, "", 0},
		{"zero id", "?id=0", http.StatusBadRequest, "", 0},
		{"unknown id", "?id=99", http.StatusNotFound, "", 0},
		{"level with no poses", "?id=2&level=expert", http.StatusNotFound, "", 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.GetCategories(w, testutil.MakeRequest("GET", "/api/v1/categories"+tc.query, nil, nil))

			testutil.AssertStatus(t, w, tc.wantStatus)
			if tc.wantStatus != http.StatusOK {
				return
			}
			if got := w.Header().Get("Cache-Control"); got != "no-cache" {
				t.Errorf("Expected Cache-Control no-cache, got %q", got)
			}

			if tc.wantCount > 0 {
				var list []models.Category
				testutil.AssertJSON(t, w, &list)
				if len(list) != tc.wantCount {
					t.Errorf("Expected %d categories, got %d", tc.wantCount, len(list))
				}
				return
			}

			var cat models.Category
			testutil.AssertJSON(t, w, &cat)
			if cat.CategoryName != tc.wantName {
				t.Errorf("Expected %q, got %q", tc.wantName, cat.CategoryName)
			}
		})
	}
}

func TestGetCategoriesByLevelFiltersPoses(t *testing.T) {
	handler := setupCatalogHandler(t)

	w := httptest.NewRecorder()
	handler.GetCategories(w, testutil.MakeRequest("GET", "/api/v1/categories?id=1&level=Expert", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var cat models.Category
	testutil.AssertJSON(t, w, &cat)
	if len(cat.Poses) != 1 || cat.Poses[0].EnglishName != "Crow" {
		t.Fatalf("Expected only Crow, got %+v", cat.Poses)
	}
	if cat.Poses[0].DifficultyLevel != "Expert" {
		t.Errorf("Expected difficulty_level Expert, got %q", cat.Poses[0].DifficultyLevel)
	}
}

func TestGetCategoriesNotFoundMessage(t *testing.T) {
	handler := setupCatalogHandler(t)

	w := httptest.NewRecorder()
	handler.GetCategories(w, testutil.MakeRequest("GET", "/api/v1/categories?name=Nope", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Message != "Category not found" {
		t.Errorf("Unexpected message: %q", resp.Message)
	}
}

func TestGetPoses(t *testing.T) {
	handler := setupCatalogHandler(t)

	t.Run("full list ordered by name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var poses []models.Pose
		testutil.AssertJSON(t, w, &poses)
		if len(poses) != 4 || poses[0].EnglishName != "Crow" {
			t.Errorf("Unexpected poses: %+v", poses)
		}
	})

	t.Run("by level", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses?level=beginner", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var poses []models.Pose
		testutil.AssertJSON(t, w, &poses)
		if len(poses) != 3 {
			t.Errorf("Expected 3 beginner poses, got %d", len(poses))
		}
	})

	t.Run("by name", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses?name=TREE", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var pose models.Pose
		testutil.AssertJSON(t, w, &pose)
		if pose.ID != 1 {
			t.Errorf("Expected Tree (1), got %+v", pose)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses?id=77", nil, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Pose not found" {
			t.Errorf("Unexpected message: %q", resp.Message)
		}
	})

	t.Run("bad id", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses?id=1.5", nil, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetMeditation(t *testing.T) {
	handler := setupCatalogHandler(t)

	w := httptest.NewRecorder()
	handler.GetMeditation(w, testutil.MakeRequest("GET", "/api/v1/meditation", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	if strings.Contains(w.Body.String(), "url_png") {
		t.Error("Meditation response must not include media URLs")
	}

	var resp struct {
		Metadata models.Metadata             `json:"metadata"`
		Data     []models.MeditationCategory `json:"data"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.Metadata.Version != "1.0.0" || resp.Metadata.CreatedBy != "Fitnest" {
		t.Errorf("Unexpected metadata: %+v", resp.Metadata)
	}
	if len(resp.Data) != 2 || resp.Data[0].CategoryName != "Breath" {
		t.Errorf("Expected database categories, got %+v", resp.Data)
	}
}

func TestGetMoods(t *testing.T) {
	handler := setupCatalogHandler(t)

	w := httptest.NewRecorder()
	handler.GetMoods(w, testutil.MakeRequest("GET", "/api/v1/moods", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Metadata models.Metadata `json:"metadata"`
		Data     []models.Mood   `json:"data"`
	}
	testutil.AssertJSON(t, w, &resp)

	if len(resp.Metadata.SupportedLanguages) != 1 || resp.Metadata.SupportedLanguages[0] != "en" {
		t.Errorf("Unexpected metadata: %+v", resp.Metadata)
	}
	if len(resp.Data) != 2 || resp.Data[0].Mood != "Anxious" {
		t.Errorf("Expected database moods, got %+v", resp.Data)
	}
}

func TestCatalogFallback(t *testing.T) {
	handler := NewCatalogHandler(failingStore{}, fallback.Loader{FS: fallbackFiles}, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.GetMeditation(w, testutil.MakeRequest("GET", "/api/v1/meditation", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if strings.Contains(w.Body.String(), "candle.png") {
		t.Error("Fallback meditation must not include media URLs")
	}

	var meditation struct {
		Data []models.MeditationCategory `json:"data"`
	}
	testutil.AssertJSON(t, w, &meditation)
	if len(meditation.Data) != 1 || meditation.Data[0].CategoryName != "Static" {
		t.Errorf("Expected fallback categories, got %+v", meditation.Data)
	}

	w = httptest.NewRecorder()
	handler.GetMoods(w, testutil.MakeRequest("GET", "/api/v1/moods", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var moods struct {
		Data []models.Mood `json:"data"`
	}
	testutil.AssertJSON(t, w, &moods)
	if len(moods.Data) != 1 || moods.Data[0].ID != 1 || moods.Data[0].Mood != "Restless" {
		t.Errorf("Expected fallback moods, got %+v", moods.Data)
	}
}

func TestCatalogFallbackFailure(t *testing.T) {
	handler := NewCatalogHandler(failingStore{}, fallback.Loader{FS: fstest.MapFS{}}, testutil.GetTestConfig())

	for _, path := range []string{"/api/v1/meditation", "/api/v1/moods"} {
		w := httptest.NewRecorder()
		req := testutil.MakeRequest("GET", path, nil, nil)
		if strings.HasSuffix(path, "moods") {
			handler.GetMoods(w, req)
		} else {
			handler.GetMeditation(w, req)
		}
		testutil.AssertStatus(t, w, http.StatusInternalServerError)
	}
}

func TestCatalogDatabaseErrors(t *testing.T) {
	handler := NewCatalogHandler(failingStore{}, fallback.Loader{FS: fallbackFiles}, testutil.GetTestConfig())

	for _, query := range []string{"", "?id=1", "?id=1&level=beginner"} {
		w := httptest.NewRecorder()
		handler.GetCategories(w, testutil.MakeRequest("GET", "/api/v1/categories"+query, nil, nil))
		testutil.AssertStatus(t, w, http.StatusInternalServerError)
	}

	for _, query := range []string{"", "?id=1", "?level=beginner"} {
		w := httptest.NewRecorder()
		handler.GetPoses(w, testutil.MakeRequest("GET", "/api/v1/poses"+query, nil, nil))
		testutil.AssertStatus(t, w, http.StatusInternalServerError)

		var resp models.ErrorResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Message != "Internal server error" {
			t.Errorf("Unexpected message: %q", resp.Message)
		}
	}
}
