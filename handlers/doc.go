// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Fitnest API.

# Handler Types

Each handler is a struct built by a constructor from its dependencies:

  - CatalogHandler: Yoga categories, poses, meditation and moods
  - CalculatorHandler: BMI, BMR and nutrition calculators
  - MealPlanHandler: AI meal planner proxy
  - AccountHandler: Sign-up, login and password flows

Dependencies are interfaces so tests can substitute fakes:

	catalog := handlers.NewCatalogHandler(store.New(conn), fallback.Loader{FS: os.DirFS(dir)}, cfg)

# Catalog

	GET /api/v1            → GetIndex (endpoint map)
	GET /api/v1/categories → GetCategories (?id, ?name, ?id&level)
	GET /api/v1/poses      → GetPoses (?id, ?name, ?level)
	GET /api/v1/meditation → GetMeditation
	GET /api/v1/moods      → GetMoods

Meditation and moods fall back to static JSON files when the database
fails. Categories and poses answer 500 instead.

# Calculators

	POST /api/v1/bmi       → BMI
	POST /api/v1/bmr       → BMR
	POST /api/v1/nutrition → Nutrition

Invalid input returns 400 with the reason in "message".

# Meal Planner

	POST /api/meal-planner → Generate

Validation failures return 400 with {"message": ...}. Upstream errors other
than rate limits are relayed with the provider's status and body. When every
model fails the response is 503.

# Accounts

	POST /api/check-user              → CheckUser
	POST /api/auth/signup             → SignUp
	POST /api/auth/login              → Login
	POST /api/auth/logout             → Logout (Bearer)
	POST /api/auth/reset-password     → ResetPassword
	POST /api/auth/update-password    → UpdatePassword (Bearer)
	GET  /api/auth/me                 → Me (Bearer)
	POST /api/auth/password-strength  → PasswordStrength

Bearer routes are wrapped with AccountHandler.RequireUser. Routes that need
the hosted auth service answer 503 when it is not configured.

# Error Responses

All errors use a consistent JSON format:

	{
	  "error": "Not Found",
	  "message": "Category not found"
	}
*/
package handlers
