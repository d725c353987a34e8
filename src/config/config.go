package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Auth
	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	CookieSecure    bool
	CookieSameSite  string

	// CORS
	CORSAllowAll bool
	CORSOrigins  []string

	DemoMode         bool
	IdentityCacheTTL time.Duration
	RunMigrations    bool

	LogLevel  string
	LogFormat string

	// unparsable values, reported by Validate
	problems []string
}

// Load reads .env when present and then the environment.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{}
	c.Port = getEnv("PORT", "5000")
	c.DatabaseURL = getEnv("DATABASE_URL", "")

	c.JWTSecret = getEnv("JWT_SECRET", "")
	c.AccessTokenTTL = c.getEnvDuration("ACCESS_TOKEN_TTL", 30*time.Minute)
	c.RefreshTokenTTL = c.getEnvDuration("REFRESH_TOKEN_TTL", 720*time.Hour)
	c.CookieSecure = c.getEnvBool("COOKIE_SECURE", true)
	c.CookieSameSite = strings.ToLower(getEnv("COOKIE_SAMESITE", "none"))

	c.CORSAllowAll = c.getEnvBool("CORS_ALLOW_ALL", true)
	c.CORSOrigins = splitList(getEnv("CORS_ORIGINS", ""))

	c.DemoMode = c.getEnvBool("DEMO_MODE", false)
	c.IdentityCacheTTL = c.getEnvDuration("IDENTITY_CACHE_TTL", 5*time.Minute)
	c.RunMigrations = c.getEnvBool("RUN_MIGRATIONS", true)

	c.LogLevel = strings.ToLower(getEnv("LOG_LEVEL", "info"))
	c.LogFormat = strings.ToLower(getEnv("LOG_FORMAT", "text"))
	return c
}

// Validate returns every configuration problem in a single error.
func (c *Config) Validate() error {
	errors := append([]string(nil), c.problems...)

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DatabaseURL == "" {
		errors = append(errors, "DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if c.AccessTokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("invalid access token ttl %v: must be positive", c.AccessTokenTTL))
	}
	if c.RefreshTokenTTL < c.AccessTokenTTL {
		errors = append(errors, fmt.Sprintf("refresh token ttl %v must not be shorter than access token ttl %v", c.RefreshTokenTTL, c.AccessTokenTTL))
	}
	if _, ok := sameSiteModes[c.CookieSameSite]; !ok {
		errors = append(errors, fmt.Sprintf("invalid COOKIE_SAMESITE '%s': must be none, lax or strict", c.CookieSameSite))
	}
	if c.CookieSameSite == "none" && !c.CookieSecure {
		errors = append(errors, "COOKIE_SAMESITE=none requires COOKIE_SECURE=true")
	}
	if !c.CORSAllowAll && len(c.CORSOrigins) == 0 {
		errors = append(errors, "CORS_ORIGINS must list at least one origin when CORS_ALLOW_ALL=false")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

var sameSiteModes = map[string]http.SameSite{
	"none":   http.SameSiteNoneMode,
	"lax":    http.SameSiteLaxMode,
	"strict": http.SameSiteStrictMode,
}

// SameSite maps CookieSameSite to its net/http value, defaulting to None.
func (c *Config) SameSite() http.SameSite {
	if mode, ok := sameSiteModes[c.CookieSameSite]; ok {
		return mode
	}
	return http.SameSiteNoneMode
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func (c *Config) getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': must be a boolean", key, value))
		return fallback
	}
	return b
}

func (c *Config) getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		c.problems = append(c.problems, fmt.Sprintf("invalid %s '%s': %v", key, value, err))
		return fallback
	}
	return d
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
