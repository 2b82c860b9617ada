package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"

	DefaultPort          = 3318
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1"
	DefaultSiteURL       = "http://localhost:3000"
	DefaultMealModels    = "openai/gpt-4o"
	DefaultMealRate      = 10
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	SupabaseURL        string
	SupabaseAnonKey    string
	SupabaseServiceKey string

	OpenRouterAPIKey string
	OpenRouterURL    string
	MealPlanModels   []string
	MealPlanRate     int

	// TrustProxy keys rate limits on X-Forwarded-For / X-Real-IP.
	// Only safe behind a proxy that overwrites those headers.
	TrustProxy bool

	SiteURL     string
	FallbackDir string
	SeedDir     string
}

// AuthConfigured reports whether the hosted auth service can be reached
func (c Config) AuthConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

// AdminConfigured reports whether admin (service role) calls are possible
func (c Config) AdminConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseServiceKey != ""
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ParseFlags validates flags and applies environment fallbacks
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var models string

	fs := flag.NewFlagSet("fitnest", flag.ContinueOnError)

	// Network and storage
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Hosted auth (prefer env)
	fs.StringVar(&cfg.SupabaseURL, "supabase-url", "", "Supabase project URL")
	fs.StringVar(&cfg.SupabaseAnonKey, "supabase-anon-key", "", "Supabase anon key (prefer env)")
	fs.StringVar(&cfg.SupabaseServiceKey, "supabase-service-key", "", "Supabase service role key (prefer env)")

	// Meal planner
	fs.StringVar(&cfg.OpenRouterAPIKey, "openrouter-key", "", "OpenRouter API key (prefer env)")
	fs.StringVar(&cfg.OpenRouterURL, "openrouter-url", "", "OpenRouter API base URL")
	fs.StringVar(&models, "models", "", "Comma-separated model list, tried in order")
	fs.IntVar(&cfg.MealPlanRate, "meal-rate", 0, "Meal planner requests per minute per client")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Take the client IP from proxy headers")

	// Site and data files
	fs.StringVar(&cfg.SiteURL, "site-url", "", "Public site URL")
	fs.StringVar(&cfg.FallbackDir, "fallback-dir", "", "Directory with fallback JSON files")
	fs.StringVar(&cfg.SeedDir, "seed", "", "Seed catalog tables from JSON exports in this directory")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = inferDatabaseType(cfg.DatabaseURL)
	}
	if cfg.DatabaseType != DatabasePostgres && cfg.DatabaseType != DatabaseSQLite {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	cfg.SupabaseURL = firstNonEmpty(cfg.SupabaseURL, os.Getenv("SUPABASE_URL"), os.Getenv("NEXT_PUBLIC_SUPABASE_URL"))
	cfg.SupabaseAnonKey = firstNonEmpty(cfg.SupabaseAnonKey, os.Getenv("SUPABASE_ANON_KEY"), os.Getenv("NEXT_PUBLIC_SUPABASE_ANON_KEY"))
	cfg.SupabaseServiceKey = firstNonEmpty(cfg.SupabaseServiceKey, os.Getenv("SUPABASE_SERVICE_ROLE_KEY"))

	cfg.OpenRouterAPIKey = firstNonEmpty(cfg.OpenRouterAPIKey, os.Getenv("OPENROUTER_API_KEY"))
	cfg.OpenRouterURL = firstNonEmpty(cfg.OpenRouterURL, os.Getenv("OPENROUTER_URL"), DefaultOpenRouterURL)
	cfg.MealPlanModels = splitList(firstNonEmpty(models, os.Getenv("MEAL_PLANNER_MODELS"), DefaultMealModels))

	if cfg.MealPlanRate == 0 {
		if rateStr := os.Getenv("MEAL_PLANNER_RATE_PER_MIN"); rateStr != "" {
			n, err := strconv.Atoi(rateStr)
			if err != nil || n <= 0 {
				return Config{}, errors.New("invalid MEAL_PLANNER_RATE_PER_MIN env variable")
			}
			cfg.MealPlanRate = n
		} else {
			cfg.MealPlanRate = DefaultMealRate
		}
	}

	if !cfg.TrustProxy {
		if v := os.Getenv("TRUST_PROXY"); v != "" {
			trust, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid TRUST_PROXY env variable")
			}
			cfg.TrustProxy = trust
		}
	}

	cfg.SiteURL = strings.TrimRight(firstNonEmpty(cfg.SiteURL, os.Getenv("SITE_URL"), DefaultSiteURL), "/")
	cfg.FallbackDir = firstNonEmpty(cfg.FallbackDir, os.Getenv("FALLBACK_DIR"), ".")
	cfg.SeedDir = firstNonEmpty(cfg.SeedDir, os.Getenv("SEED_DIR"))

	return cfg, nil
}

func inferDatabaseType(url string) string {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return DatabasePostgres
	}
	return DatabaseSQLite
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
