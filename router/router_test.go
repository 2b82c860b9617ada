// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sanskar1309/fitnest-fullstack/cliparse"
	"github.com/sanskar1309/fitnest-fullstack/models"
	"github.com/sanskar1309/fitnest-fullstack/testutil"
)

func setupRouter(t *testing.T, cfg cliparse.Config) *http.ServeMux {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })
	testutil.SeedCatalog(t, db)
	return NewRouter(db, cfg)
}

func TestPlainRoutes(t *testing.T) {
	mux := setupRouter(t, testutil.GetTestConfig())

	cases := []struct {
		path     string
		status   int
		wantBody string
	}{
		{"/health", http.StatusOK, "OK"},
		{"/", http.StatusOK, "fitnest API v1"},
		{"/nope", http.StatusNotFound, ""},
		{"/api/v1/unknown", http.StatusNotFound, ""},
	}

	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))

			if w.Code != tc.status {
				t.Fatalf("GET %s: status %d, want %d", tc.path, w.Code, tc.status)
			}
			if tc.wantBody != "" && w.Body.String() != tc.wantBody {
				t.Errorf("GET %s: body %q, want %q", tc.path, w.Body.String(), tc.wantBody)
			}
		})
	}
}

func TestRouteExistence(t *testing.T) {
	mux := setupRouter(t, testutil.GetTestConfig())

	// Every route must reach a handler; 404 with a JSON body still counts
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},
		{"GET", "/metrics"},

		{"GET", "/api/v1"},
		{"GET", "/api/v1/categories"},
		{"GET", "/api/v1/poses"},
		{"GET", "/api/v1/meditation"},
		{"GET", "/api/v1/moods"},

		{"POST", "/api/v1/bmi"},
		{"POST", "/api/v1/bmr"},
		{"POST", "/api/v1/nutrition"},
		{"POST", "/api/meal-planner"},

		{"POST", "/api/check-user"},
		{"POST", "/api/auth/signup"},
		{"POST", "/api/auth/login"},
		{"POST", "/api/auth/logout"},
		{"POST", "/api/auth/reset-password"},
		{"POST", "/api/auth/update-password"},
		{"GET", "/api/auth/me"},
		{"POST", "/api/auth/password-strength"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader("{}"))
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s not registered", tc.method, tc.path)
			}
			if w.Code == http.StatusNotFound && !strings.Contains(w.Header().Get("Content-Type"), "application/json") {
				t.Errorf("Route %s %s fell through to the default 404", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := setupRouter(t, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/categories"},
		{"DELETE", "/api/v1/poses"},
		{"GET", "/api/v1/bmi"},
		{"GET", "/api/meal-planner"},
		{"PUT", "/api/auth/login"},
		{"POST", "/api/auth/me"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Fatalf("Expected 405, got %d", w.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Expected JSON body: %v", err)
			}
			if resp.Message != "Method not allowed" {
				t.Errorf("Unexpected message %q", resp.Message)
			}
		})
	}
}

func TestCatalogThroughRouter(t *testing.T) {
	mux := setupRouter(t, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/categories?id=1&level=Expert", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var cat models.Category
	testutil.AssertJSON(t, w, &cat)
	if cat.CategoryName != "Balancing" || len(cat.Poses) != 1 {
		t.Errorf("Unexpected category: %+v", cat)
	}
}

func TestUnconfiguredServices(t *testing.T) {
	mux := setupRouter(t, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/auth/login", models.LoginRequest{Email: "a@b.co", Password: "pw"}, nil))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/api/auth/me", nil, map[string]string{"Authorization": "Bearer t"}))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("POST", "/api/meal-planner", strings.NewReader("{}")))
	testutil.AssertStatus(t, w, http.StatusServiceUnavailable)

	// Strength reports never need the auth service
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/api/auth/password-strength", models.PasswordStrengthRequest{Password: "abc"}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

func TestMealPlannerRateLimit(t *testing.T) {
	cfg := testutil.GetTestConfig()
	cfg.MealPlanRate = 2
	mux := setupRouter(t, cfg)

	var codes []int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/meal-planner", strings.NewReader("{}"))
		req.RemoteAddr = "203.0.113.9:4000"
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] == http.StatusTooManyRequests || codes[1] == http.StatusTooManyRequests {
		t.Errorf("First two requests should pass the limiter, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("Third request should be limited, got %v", codes)
	}

	// Another client has its own bucket
	req := httptest.NewRequest("POST", "/api/meal-planner", strings.NewReader("{}"))
	req.RemoteAddr = "198.51.100.1:4000"
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	if w.Code == http.StatusTooManyRequests {
		t.Error("Separate client should not be limited")
	}
}
