// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	return string(body)
}

func TestInstrumentHandlerUsesRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/poses", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := InstrumentHandler(mux)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/v1/poses?level=beginner", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/no/such/path", nil))

	out := scrape(t)
	assert.Contains(t, out, `fitnest_http_requests_total{method="GET",route="/api/v1/poses",status="418"} 1`)
	assert.Contains(t, out, `fitnest_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, out, `fitnest_http_request_duration_seconds_count{method="GET",route="/api/v1/poses"} 1`)
	assert.Contains(t, out, "fitnest_http_inflight_requests 0")
	assert.NotContains(t, out, "level=beginner")
}

func TestRecorders(t *testing.T) {
	RecordMealPlanAttempt("openai/gpt-4o", "rate_limited")
	RecordMealPlanAttempt("openai/gpt-4o", "rate_limited")
	RecordMealPlanAttempt("", "transport_error")
	RecordCatalogFallback("moods")

	out := scrape(t)
	assert.Contains(t, out, `fitnest_meal_planner_attempts_total{model="openai/gpt-4o",outcome="rate_limited"} 2`)
	assert.Contains(t, out, `fitnest_meal_planner_attempts_total{model="unknown",outcome="transport_error"} 1`)
	assert.Contains(t, out, `fitnest_catalog_fallbacks_total{resource="moods"} 1`)
}

func TestRouteLabel(t *testing.T) {
	r := httptest.NewRequest("GET", "/health", nil)
	assert.Equal(t, "unmatched", routeLabel(r))

	r.Pattern = "GET /health"
	assert.Equal(t, "/health", routeLabel(r))

	r.Pattern = "/api/v1/"
	assert.Equal(t, "/api/v1/", routeLabel(r))
}
