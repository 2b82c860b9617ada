// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mealplan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// fakeProvider answers each model from a fixed table and records calls
type fakeProvider struct {
	mu      sync.Mutex
	calls   []string
	answers map[string]func(w http.ResponseWriter)
	headers http.Header
	body    []byte
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	model := gjson.GetBytes(body, "model").String()

	f.mu.Lock()
	f.calls = append(f.calls, model)
	f.headers = r.Header.Clone()
	f.body = body
	answer := f.answers[model]
	f.mu.Unlock()

	if r.URL.Path != "/api/v1/chat/completions" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	answer(w)
}

func completion(content string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		out, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
		})
		w.Header().Set("Content-Type", "application/json")
		w.Write(out)
	}
}

func status(code int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.WriteHeader(code)
		fmt.Fprint(w, body)
	}
}

func newPlanner(t *testing.T, f *fakeProvider, models ...string) *Planner {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return New(Config{
		BaseURL:    srv.URL + "/api/v1/",
		APIKey:     "sk-test",
		SiteURL:    "https://fitnest.app",
		Models:     models,
		HTTPClient: srv.Client(),
	})
}

func testRequest(t *testing.T) *Request {
	t.Helper()
	req, err := ParseRequest([]byte(validBody))
	require.NoError(t, err)
	return req
}

const planJSON = `{"meals":[
	{"name":"Oats","macronutrients":{"protein":12,"carbs":40.5,"fats":6,"fiber":5}},
	{"name":"Dal","macronutrients":{"Protein":20,"Carbs":50,"Fats":10,"Fiber":9}},
	{"name":"Tea"}
]}`

func TestGenerateSuccess(t *testing.T) {
	f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
		"openai/gpt-4o": completion("```json\n" + planJSON + "\n```"),
	}}
	p := newPlanner(t, f, "openai/gpt-4o")

	plan, err := p.Generate(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "32g", gjson.GetBytes(plan, "overall_macros.protein").String())
	assert.Equal(t, "90.5g", gjson.GetBytes(plan, "overall_macros.carbs").String())
	assert.Equal(t, "16g", gjson.GetBytes(plan, "overall_macros.fats").String())
	assert.Equal(t, "14g", gjson.GetBytes(plan, "overall_macros.fiber").String())
	assert.Equal(t, int64(3), gjson.GetBytes(plan, "meals.#").Int())

	assert.Equal(t, "Bearer sk-test", f.headers.Get("Authorization"))
	assert.Equal(t, "https://fitnest.app", f.headers.Get("HTTP-Referer"))
	assert.Equal(t, "AI Meal Planner", f.headers.Get("X-Title"))
	assert.Equal(t, int64(2000), gjson.GetBytes(f.body, "max_tokens").Int())
	assert.Equal(t, "user", gjson.GetBytes(f.body, "messages.0.role").String())
	assert.Contains(t, gjson.GetBytes(f.body, "messages.0.content").String(), "28-year-old female")
}

func TestGenerateFallsThroughModels(t *testing.T) {
	f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
		"a": status(http.StatusTooManyRequests, `{"error":{"message":"slow down","code":429}}`),
		"b": status(http.StatusOK, `{"error":{"message":"quota","code":429}}`),
		"c": completion(""),
		"d": completion("here is your plan!"),
		"e": completion(`{"days":[]}`),
	}}
	p := newPlanner(t, f, "a", "b", "c", "d", "e")

	plan, err := p.Generate(context.Background(), testRequest(t))
	require.NoError(t, err)
	assert.JSONEq(t, `{"days":[]}`, string(plan))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, f.calls)
}

func TestGenerateProviderErrorStops(t *testing.T) {
	f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
		"a": status(http.StatusUnauthorized, `{"error":{"message":"bad key","code":401}}`),
		"b": completion(planJSON),
	}}
	p := newPlanner(t, f, "a", "b")

	_, err := p.Generate(context.Background(), testRequest(t))
	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusUnauthorized, perr.StatusCode)
	assert.JSONEq(t, `{"error":{"message":"bad key","code":401}}`, string(perr.Body))
	assert.Equal(t, []string{"a"}, f.calls)
}

func TestGenerateExhausted(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
			"a": status(http.StatusTooManyRequests, `{"error":{"code":429}}`),
			"b": status(http.StatusTooManyRequests, `{"error":{"message":"last","code":429}}`),
		}}
		_, err := newPlanner(t, f, "a", "b").Generate(context.Background(), testRequest(t))

		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, MsgExhausted, exhausted.Error())
		assert.JSONEq(t, `{"error":{"message":"last","code":429}}`, string(exhausted.LastError))
	})

	t.Run("unparseable content", func(t *testing.T) {
		f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
			"a": completion("```\nnot json\n```"),
		}}
		_, err := newPlanner(t, f, "a").Generate(context.Background(), testRequest(t))

		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, "Failed to parse response", gjson.GetBytes(exhausted.LastError, "message").String())
		assert.Equal(t, "not json", gjson.GetBytes(exhausted.LastError, "details").String())
	})

	t.Run("no content", func(t *testing.T) {
		f := &fakeProvider{answers: map[string]func(http.ResponseWriter){
			"a": status(http.StatusOK, `{"choices":[]}`),
		}}
		_, err := newPlanner(t, f, "a").Generate(context.Background(), testRequest(t))

		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, "No content in response", gjson.GetBytes(exhausted.LastError, "message").String())
		assert.True(t, gjson.GetBytes(exhausted.LastError, "details.choices").IsArray())
	})

	t.Run("no models", func(t *testing.T) {
		_, err := newPlanner(t, &fakeProvider{}).Generate(context.Background(), testRequest(t))
		var exhausted *ExhaustedError
		require.ErrorAs(t, err, &exhausted)
		assert.Equal(t, "null", string(exhausted.LastError))
	})
}

func TestGenerateTransportError(t *testing.T) {
	p := New(Config{BaseURL: "http://127.0.0.1:1", APIKey: "k", Models: []string{"a"}})

	_, err := p.Generate(context.Background(), testRequest(t))
	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Contains(t, gjson.GetBytes(exhausted.LastError, "message").String(), "completion request to a failed")
	assert.False(t, gjson.GetBytes(exhausted.LastError, "details").Exists())
}

func TestGenerateNotConfigured(t *testing.T) {
	p := New(Config{BaseURL: "http://unused", Models: []string{"a"}})
	assert.False(t, p.Configured())

	_, err := p.Generate(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestCleanContent(t *testing.T) {
	assert.Equal(t, `{"a":1}`, cleanContent("  ```json\n{\"a\":1}\n```  "))
	assert.Equal(t, `{"a":1}`, cleanContent("```{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, cleanContent(`{"a":1}`))
}

func TestSumMacros(t *testing.T) {
	totals, ok := SumMacros([]byte(planJSON))
	require.True(t, ok)
	assert.Equal(t, OverallMacros{Protein: "32g", Carbs: "90.5g", Fats: "16g", Fiber: "14g"}, totals)

	_, ok = SumMacros([]byte(`{"meals":[{"macronutrients":{"protein":"12g"}}]}`))
	assert.False(t, ok, "string macros are not summed")

	_, ok = SumMacros([]byte(`{"breakfast":{}}`))
	assert.False(t, ok)
}

func TestWithOverallMacrosReplacesExisting(t *testing.T) {
	plan, err := withOverallMacros([]byte(`{"overall_macros":"model guess","meals":[{"macronutrients":{"fiber":3}}]}`))
	require.NoError(t, err)
	assert.Equal(t, "3g", gjson.GetBytes(plan, "overall_macros.fiber").String())
	assert.Equal(t, "0g", gjson.GetBytes(plan, "overall_macros.protein").String())

	plan, err = withOverallMacros([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(plan))
}
