package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	// PublicBaseURL is the externally reachable URL of the customer frontend; the
	// payment processor redirects the customer back there after checkout.
	PublicBaseURL string

	DB DBConfig

	Checkout CheckoutConfig

	Auth AuthConfig

	// AllowedOrigins is a comma-separated allowlist of origins allowed to call the
	// browser-facing endpoints. Example:
	//   https://styledecor.app,http://localhost:5173
	AllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type CheckoutConfig struct {
	// BaseURL of the payment processor's API. Point it at a local stub in dev.
	BaseURL   string
	SecretKey string

	// SuccessPath/CancelPath are appended to PublicBaseURL when creating sessions.
	SuccessPath string
	CancelPath  string
}

type AuthConfig struct {
	// JWTSecret verifies the HS256 access tokens issued by the auth frontend.
	JWTSecret string

	// Audience expected in access tokens (optional; skipped when empty).
	Audience string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		PublicBaseURL:  env("PUBLIC_BASE_URL", "http://localhost:5173"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "styledecor"),
			User:     env("DB_USER", "styledecor"),
			Password: env("DB_PASSWORD", "styledecor"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Checkout: CheckoutConfig{
			BaseURL:     env("CHECKOUT_BASE_URL", "https://api.stripe.com"),
			SecretKey:   os.Getenv("CHECKOUT_SECRET_KEY"),
			SuccessPath: env("CHECKOUT_SUCCESS_PATH", "/payment-success"),
			CancelPath:  env("CHECKOUT_CANCEL_PATH", "/payment-cancelled"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("AUTH_JWT_SECRET"),
			Audience:  os.Getenv("AUTH_AUDIENCE"),
		},

		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	start := 0
	for i := 0; i <= len(v); i++ {
		if i == len(v) || v[i] == ',' {
			s := v[start:i]
			start = i + 1
			// trim spaces
			for len(s) > 0 && (s[0] == ' ' || s[0] == '\t' || s[0] == '\n' || s[0] == '\r') {
				s = s[1:]
			}
			for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t' || s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
				s = s[:len(s)-1]
			}
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
