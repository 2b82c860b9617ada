// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"

	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := db.Open(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CatalogFixtures is a small catalog covering every table:
//
//	Balancing (1): Tree (Beginner), Crow (Expert), Warrior III (Intermediate)
//	Standing  (2): Mountain (Beginner), Tree (Beginner), Warrior III (Beginner)
//	Restorative (3): no poses
//	Breath (1): Box Breathing, Alternate Nostril; Body (2): Body Scan
//	Moods: Anxious -> [1, 3], Tired -> [2]
var CatalogFixtures = fstest.MapFS{
	"difficulty.json": {Data: []byte(`[
		{"id": 1, "difficulty_level": "Beginner"},
		{"id": 2, "difficulty_level": "Intermediate"},
		{"id": 3, "difficulty_level": "Expert"}
	]`)},
	"poses.json": {Data: []byte(`[
		{"id": 1, "english_name": "Tree", "sanskrit_name": "Vrksasana", "pose_benefits": "Improves balance", "url_png": "https://cdn.example/tree.png"},
		{"id": 2, "english_name": "Crow", "sanskrit_name": "Bakasana", "pose_benefits": "Strengthens arms"},
		{"id": 3, "english_name": "Mountain", "sanskrit_name": "Tadasana"},
		{"id": 4, "english_name": "Warrior III", "sanskrit_name": "Virabhadrasana III"}
	]`)},
	"categories.json": {Data: []byte(`[
		{"id": 1, "category_name": "Balancing", "category_description": "Poses that challenge balance"},
		{"id": 2, "category_name": "Standing", "category_description": "Grounded standing poses"},
		{"id": 3, "category_name": "Restorative", "category_description": null}
	]`)},
	"transitive_poses.json": {Data: []byte(`[
		{"id": 1, "category_id": 1, "pose_id": 1, "difficulty_id": 1},
		{"id": 2, "category_id": 1, "pose_id": 2, "difficulty_id": 3},
		{"id": 3, "category_id": 1, "pose_id": 4, "difficulty_id": 2},
		{"id": 4, "category_id": 2, "pose_id": 3, "difficulty_id": 1},
		{"id": 5, "category_id": 2, "pose_id": 1, "difficulty_id": 1},
		{"id": 6, "category_id": 2, "pose_id": 4, "difficulty_id": 1}
	]`)},
	"meditation_categories.json": {Data: []byte(`[
		{"id": 1, "category_name": "Breath", "category_description": "Breath-focused practices"},
		{"id": 2, "category_name": "Body", "category_description": "Body awareness"}
	]`)},
	"meditation_practices.json": {Data: []byte(`[
		{"id": 1, "category_id": 1, "english_name": "Box Breathing", "practice_benefits": "Calms the nervous system",
		 "practice_description": "Inhale, hold, exhale, hold for four counts each", "suggested_duration": "5 minutes",
		 "url_png": "https://cdn.example/box.png", "url_svg": "https://cdn.example/box.svg"},
		{"id": 2, "category_id": 1, "english_name": "Alternate Nostril", "practice_benefits": "Balances energy",
		 "practice_description": "Breathe through one nostril at a time", "suggested_duration": "10 minutes"},
		{"id": 3, "category_id": 2, "english_name": "Body Scan", "practice_benefits": "Releases tension",
		 "practice_description": "Move attention slowly from toes to head", "suggested_duration": "15 minutes"}
	]`)},
	"moods.json": {Data: []byte(`[
		{"id": 1, "mood": "Anxious", "description": "Feeling worried or uneasy", "recommended_practices": [1, 3]},
		{"id": 2, "mood": "Tired", "description": "Low on energy", "recommended_practices": [2]}
	]`)},
}

// SeedCatalog loads CatalogFixtures into the database
func SeedCatalog(t *testing.T, conn *sqlx.DB) {
	t.Helper()
	if _, err := db.Seed(context.Background(), conn, CatalogFixtures); err != nil {
		t.Fatalf("Failed to seed catalog: %v", err)
	}
}

// GetTestConfig returns a standard test configuration with no external services
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseURL:    ":memory:",
		DatabaseType:   cliparse.DatabaseSQLite,
		OpenRouterURL:  cliparse.DefaultOpenRouterURL,
		MealPlanModels: []string{cliparse.DefaultMealModels},
		MealPlanRate:   60,
		SiteURL:        "http://localhost:3000",
		FallbackDir:    ".",
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
