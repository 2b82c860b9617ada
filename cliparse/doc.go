// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

LoadDotEnv reads .env files into the environment first, so local
development can keep secrets out of the shell:

	_ = cliparse.LoadDotEnv()

# CLI Flags and Environment Variables

	-p                    PORT                       (default 3318)
	-d                    DATABASE_URL               (required)
	-t                    DATABASE_TYPE              (inferred from URL)
	-supabase-url         SUPABASE_URL, NEXT_PUBLIC_SUPABASE_URL
	-supabase-anon-key    SUPABASE_ANON_KEY, NEXT_PUBLIC_SUPABASE_ANON_KEY
	-supabase-service-key SUPABASE_SERVICE_ROLE_KEY
	-openrouter-key       OPENROUTER_API_KEY
	-openrouter-url       OPENROUTER_URL             (https://openrouter.ai/api/v1)
	-models               MEAL_PLANNER_MODELS        (openai/gpt-4o)
	-meal-rate            MEAL_PLANNER_RATE_PER_MIN  (10)
	-site-url             SITE_URL                   (http://localhost:3000)
	-fallback-dir         FALLBACK_DIR               (.)
	-seed                 SEED_DIR

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if DATABASE_URL is missing, if the database
type is not sqlite or postgres, or if a numeric variable does not parse.
Auth and meal planner settings are optional; the endpoints that need them
answer 503 until they are set.
*/
package cliparse
