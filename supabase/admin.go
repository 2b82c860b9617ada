// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package supabase

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPerPage is the page size UserExists walks with
const DefaultPerPage = 1000

type AdminAPI struct {
	c *Client
}

// ListUsers returns one page of users. Pages start at 1.
func (a *AdminAPI) ListUsers(ctx context.Context, page, perPage int) ([]User, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}

	q := url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
	raw, err := a.c.request(ctx, http.MethodGet, "/admin/users", q, "", nil)
	if err != nil {
		return nil, err
	}

	var res struct {
		Users []User `json:"users"`
	}
	if err := decode(raw, &res); err != nil {
		return nil, err
	}
	return res.Users, nil
}

// UserExists pages through every user looking for email, case-insensitively
func (a *AdminAPI) UserExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	for page := 1; ; page++ {
		users, err := a.ListUsers(ctx, page, DefaultPerPage)
		if err != nil {
			return false, err
		}
		for _, u := range users {
			if strings.ToLower(u.Email) == email {
				return true, nil
			}
		}
		if len(users) < DefaultPerPage {
			return false, nil
		}
	}
}
