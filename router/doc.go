// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Fitnest API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every API path also registers a method-less pattern so that unsupported
methods get a JSON 405 instead of the mux's plain-text default.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Catalog:

	GET /api/v1            - Endpoint index
	GET /api/v1/categories - Yoga categories (?id, ?name, ?id&level)
	GET /api/v1/poses      - Yoga poses (?id, ?name, ?level)
	GET /api/v1/meditation - Meditation categories and practices
	GET /api/v1/moods      - Moods with recommended practices

Calculators:

	POST /api/v1/bmi
	POST /api/v1/bmr
	POST /api/v1/nutrition

Meal planner (rate limited per client IP):

	POST /api/meal-planner

Accounts (Bearer marks routes that need a session token):

	POST /api/check-user
	POST /api/auth/signup
	POST /api/auth/login
	POST /api/auth/logout          - Bearer
	POST /api/auth/reset-password
	POST /api/auth/update-password - Bearer
	GET  /api/auth/me              - Bearer
	POST /api/auth/password-strength

# Handler Initialization

Hosted auth clients are created only when their keys are configured. The
anon key serves user calls and the service-role key serves admin lookups.
Without them the account routes answer 503.
*/
package router
