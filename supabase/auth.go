// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package supabase

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"
)

type AuthAPI struct {
	c *Client
}

func redirectQuery(redirectTo string) url.Values {
	if redirectTo == "" {
		return nil
	}
	return url.Values{"redirect_to": {redirectTo}}
}

// SignUp registers a user. data is stored as user metadata.
func (a *AuthAPI) SignUp(ctx context.Context, email, password string, data map[string]any, redirectTo string) (*AuthResponse, error) {
	body := map[string]any{"email": email, "password": password}
	if len(data) > 0 {
		body["data"] = data
	}

	raw, err := a.c.request(ctx, http.MethodPost, "/signup", redirectQuery(redirectTo), "", body)
	if err != nil {
		return nil, err
	}

	// GoTrue answers with a session when confirmation is off, otherwise with the bare user
	res := &AuthResponse{}
	if gjson.GetBytes(raw, "access_token").Exists() {
		var session Session
		if err := decode(raw, &session); err != nil {
			return nil, err
		}
		res.Session = &session
		res.User = session.User
		return res, nil
	}

	var user User
	if err := decode(raw, &user); err != nil {
		return nil, err
	}
	res.User = &user
	return res, nil
}

// SignIn exchanges an email and password for a session
func (a *AuthAPI) SignIn(ctx context.Context, email, password string) (*Session, error) {
	raw, err := a.c.request(ctx, http.MethodPost, "/token", url.Values{"grant_type": {"password"}}, "",
		map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var session Session
	if err := decode(raw, &session); err != nil {
		return nil, err
	}
	if session.AccessToken == "" {
		return nil, fmt.Errorf("supabase returned no access token")
	}
	return &session, nil
}

// SignOut revokes the session behind token
func (a *AuthAPI) SignOut(ctx context.Context, token string) error {
	_, err := a.c.request(ctx, http.MethodPost, "/logout", nil, token, nil)
	return err
}

// Recover sends a password recovery email
func (a *AuthAPI) Recover(ctx context.Context, email, redirectTo string) error {
	_, err := a.c.request(ctx, http.MethodPost, "/recover", redirectQuery(redirectTo), "",
		map[string]string{"email": email})
	return err
}

// UpdateUser changes the attributes of the user who owns token
func (a *AuthAPI) UpdateUser(ctx context.Context, token string, attrs UserAttributes) (*User, error) {
	raw, err := a.c.request(ctx, http.MethodPut, "/user", nil, token, attrs)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(raw, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser returns the user who owns token
func (a *AuthAPI) GetUser(ctx context.Context, token string) (*User, error) {
	raw, err := a.c.request(ctx, http.MethodGet, "/user", nil, token, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := decode(raw, &user); err != nil {
		return nil, err
	}
	if user.ID == "" {
		return nil, fmt.Errorf("supabase returned a user without an id")
	}
	return &user, nil
}
