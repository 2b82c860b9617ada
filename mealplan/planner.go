// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mealplan

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sanskar1309/fitnest-fullstack/metrics"
)

const (
	MaxTokens = 2000
	AppTitle  = "AI Meal Planner"

	MsgExhausted = "All AI providers are currently unavailable or rate-limited. Please try again later."
)

var ErrNotConfigured = errors.New("meal planner API key is not configured")

// ProviderError is a non-retryable upstream failure, relayed to the client as-is
type ProviderError struct {
	StatusCode int
	Body       []byte
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

// ExhaustedError means every model failed. LastError is the JSON
// describing the final failure.
type ExhaustedError struct {
	LastError json.RawMessage
}

func (e *ExhaustedError) Error() string {
	return MsgExhausted
}

type Config struct {
	BaseURL    string
	APIKey     string
	SiteURL    string
	Models     []string
	HTTPClient *http.Client // optional
}

// Planner asks each configured model in turn for a meal plan
type Planner struct {
	endpoint string
	apiKey   string
	siteURL  string
	models   []string
	http     *http.Client
}

func New(cfg Config) *Planner {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 60 * time.Second}
	}
	return &Planner{
		endpoint: strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions",
		apiKey:   cfg.APIKey,
		siteURL:  cfg.SiteURL,
		models:   cfg.Models,
		http:     hc,
	}
}

// Configured reports whether the planner has an API key
func (p *Planner) Configured() bool {
	return p.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// failure builds a {"message", "details"} record for LastError.
// A nil details leaves the key out.
func failure(message string, details any) json.RawMessage {
	payload := map[string]any{"message": message}
	if details != nil {
		payload["details"] = details
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage(strconv.Quote(message))
	}
	return out
}

// Generate returns the meal plan JSON from the first model that produces one.
// Rate-limited or malformed answers move on to the next model.
func (p *Planner) Generate(ctx context.Context, req *Request) ([]byte, error) {
	if !p.Configured() {
		return nil, ErrNotConfigured
	}

	prompt := BuildPrompt(req)
	lastError := json.RawMessage("null")

	for _, model := range p.models {
		status, body, err := p.complete(ctx, model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Warn("meal planner request failed", "model", model, "error", err)
			metrics.RecordMealPlanAttempt(model, "transport_error")
			lastError = failure(err.Error(), nil)
			continue
		}

		if !gjson.ValidBytes(body) {
			metrics.RecordMealPlanAttempt(model, "invalid_response")
			lastError = failure("Invalid response from provider", string(body))
			continue
		}

		if status < 200 || status > 299 {
			code := gjson.GetBytes(body, "error.code")
			if status == http.StatusTooManyRequests || (code.Type == gjson.Number && code.Int() == http.StatusTooManyRequests) {
				slog.Info("meal planner model rate-limited", "model", model)
				metrics.RecordMealPlanAttempt(model, "rate_limited")
				lastError = json.RawMessage(body)
				continue
			}
			metrics.RecordMealPlanAttempt(model, "provider_error")
			return nil, &ProviderError{StatusCode: status, Body: body}
		}

		content := gjson.GetBytes(body, "choices.0.message.content")
		if content.Type != gjson.String || content.Str == "" {
			metrics.RecordMealPlanAttempt(model, "no_content")
			lastError = failure("No content in response", json.RawMessage(body))
			continue
		}

		cleaned := cleanContent(content.Str)
		if !gjson.Valid(cleaned) {
			metrics.RecordMealPlanAttempt(model, "parse_error")
			lastError = failure("Failed to parse response", cleaned)
			continue
		}

		plan, err := withOverallMacros([]byte(cleaned))
		if err != nil {
			metrics.RecordMealPlanAttempt(model, "parse_error")
			lastError = failure("Failed to parse response", cleaned)
			continue
		}

		metrics.RecordMealPlanAttempt(model, "success")
		return plan, nil
	}

	return nil, &ExhaustedError{LastError: lastError}
}

// complete performs one chat completion call
func (p *Planner) complete(ctx context.Context, model, prompt string) (int, []byte, error) {
	payload, err := json.Marshal(chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: MaxTokens,
	})
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("HTTP-Referer", p.siteURL)
	httpReq.Header.Set("X-Title", AppTitle)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("completion request to %s failed: %w", model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read completion response: %w", err)
	}
	return resp.StatusCode, body, nil
}

var (
	fenceOpen  = regexp.MustCompile("^```[a-zA-Z]*\n?")
	fenceClose = regexp.MustCompile("```$")
)

// cleanContent strips a surrounding markdown code fence
func cleanContent(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = fenceOpen.ReplaceAllString(s, "")
		s = fenceClose.ReplaceAllString(s, "")
		s = strings.TrimSpace(s)
	}
	return s
}
