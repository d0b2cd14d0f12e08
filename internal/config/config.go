// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// minJWTSecretBytes is the shortest JWT_SECRET Load accepts.
const minJWTSecretBytes = 32

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret is the HMAC key for session tokens. Required, at least 32 bytes.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// SessionTTL is both the token lifetime and the cookie max-age. Defaults to 3h.
	SessionTTL time.Duration

	// CookieSecure sets the Secure flag on the session cookie. Defaults to false
	// so the cookie works over plain HTTP in development.
	CookieSecure bool

	// LandingURL is where GET /logout redirects. Defaults to "/".
	LandingURL string

	// BcryptCost is the bcrypt work factor. Defaults to 10.
	BcryptCost int

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// AutoMigrate applies pending migrations at startup. Defaults to true.
	AutoMigrate bool
}

// Load reads configuration from environment variables and returns a Config.
// Returns a single error listing every required variable that is not set and
// every variable that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LandingURL:  getEnv("LANDING_URL", "/"),
	}

	var missing, invalid []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	switch {
	case cfg.JWTSecret == "":
		missing = append(missing, "JWT_SECRET")
	case len(cfg.JWTSecret) < minJWTSecretBytes:
		invalid = append(invalid, fmt.Sprintf("JWT_SECRET (must be at least %d bytes)", minJWTSecretBytes))
	}

	parse := func(key, fallback string, fn func(string) error) {
		if err := fn(getEnv(key, fallback)); err != nil {
			invalid = append(invalid, fmt.Sprintf("%s (%v)", key, err))
		}
	}
	parse("SESSION_TTL", "3h", func(s string) (err error) {
		cfg.SessionTTL, err = time.ParseDuration(s)
		if err == nil && cfg.SessionTTL <= 0 {
			err = errors.New("must be positive")
		}
		return err
	})
	parse("COOKIE_SECURE", "false", func(s string) (err error) {
		cfg.CookieSecure, err = strconv.ParseBool(s)
		return err
	})
	parse("BCRYPT_COST", "10", func(s string) (err error) {
		cfg.BcryptCost, err = strconv.Atoi(s)
		return err
	})
	parse("MAX_BODY_BYTES", "1048576", func(s string) (err error) {
		cfg.MaxBodyBytes, err = strconv.ParseInt(s, 10, 64)
		if err == nil && cfg.MaxBodyBytes <= 0 {
			err = errors.New("must be positive")
		}
		return err
	})
	parse("AUTO_MIGRATE", "true", func(s string) (err error) {
		cfg.AutoMigrate, err = strconv.ParseBool(s)
		return err
	})

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}

	return cfg, nil
}

// LoadDotEnv seeds the environment from the given files (".env" when none
// are named). Variables already set in the environment win, and a missing
// file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
