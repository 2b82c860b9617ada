// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package supabase is a small client for the Supabase Auth (GoTrue) REST API.
//
// Use the anon key for Auth() calls and the service-role key for Admin() calls.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const authPrefix = "/auth/v1"

type Config struct {
	URL        string
	APIKey     string
	HTTPClient *http.Client // optional
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// APIError is a non-2xx response from the auth service
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("supabase: status %d: %s", e.StatusCode, e.Message)
}

func New(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid supabase URL: %w", err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/") + authPrefix,
		apiKey:  cfg.APIKey,
		http:    hc,
	}, nil
}

// Auth returns the end-user auth operations
func (c *Client) Auth() *AuthAPI {
	return &AuthAPI{c: c}
}

// Admin returns the admin operations. The client must hold the service-role key.
func (c *Client) Admin() *AdminAPI {
	return &AdminAPI{c: c}
}

// request performs one call. token overrides the API key as the bearer when set.
// The raw body is returned for 2xx responses.
func (c *Client) request(ctx context.Context, method, path string, query url.Values, token string, body any) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	bearer := c.apiKey
	if token != "" {
		bearer = token
	}
	req.Header.Set("Authorization", "Bearer "+bearer)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read supabase response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data, resp.StatusCode)}
	}
	return data, nil
}

// errorMessage picks the human-readable field GoTrue used for this error
func errorMessage(body []byte, status int) string {
	if gjson.ValidBytes(body) {
		for _, key := range []string{"msg", "error_description", "message", "error"} {
			if v := gjson.GetBytes(body, key); v.Type == gjson.String && v.Str != "" {
				return v.Str
			}
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return http.StatusText(status)
}

func decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode supabase response: %w", err)
	}
	return nil
}
