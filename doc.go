// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Fitnest API server.

Fitnest is the JSON API behind a health and wellness site: BMI, BMR and
nutrition calculators, a yoga and meditation catalog, an AI meal planner,
and account flows delegated to a hosted auth service.

# Starting the Server

The server reads a .env file if present, then CLI flags and environment
variables:

	DATABASE_URL=fitnest.db go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -seed ./data

# Configuration

Required settings:

  - DATABASE_URL (-d): PostgreSQL URL or SQLite file path

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): postgres or sqlite (inferred from the URL)
  - SUPABASE_URL, SUPABASE_ANON_KEY, SUPABASE_SERVICE_ROLE_KEY: Hosted auth
  - OPENROUTER_API_KEY, OPENROUTER_URL, MEAL_PLANNER_MODELS: Meal planner
  - MEAL_PLANNER_RATE_PER_MIN (-meal-rate): Planner requests per client per minute
  - SITE_URL (-site-url): Public site URL for redirects
  - FALLBACK_DIR (-fallback-dir): Directory with meditations.json and moods.json
  - SEED_DIR (-seed): Load catalog JSON exports at startup

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (catalog, calculators, meal planner, accounts)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, request IDs, rate limiting, JSON helpers
  - metrics: Prometheus collectors
  - store, db, fallback: Catalog storage, schema and seeding, static fallback
  - health, account, mealplan: Calculators, password rules, LLM client
  - supabase, auth: Hosted auth client and bearer-token verification
  - models: Request/response types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
