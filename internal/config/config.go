package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingSessionSecret is returned by New when SESSION_SECRET is not set.
var ErrMissingSessionSecret = errors.New("required environment variable SESSION_SECRET is not set")

// Provider exposes configuration values to the rest of the application.
// Handlers and clients depend on this interface so tests can supply stubs.
type Provider interface {
	GetAppAddr() string
	GetAppBaseURL() string
	GetSessionSecret() string
	GetBackendURL() string
	GetBackendTimeout() time.Duration
	GetGeoURL() string
	GetGeoToken() string
	GetNearbyRadius() string
	GetRateLimitPerMinute() int
	GetTracingEnabled() bool
	GetTracingZipkinURL() string
}

// Config holds all configuration for the application.
type Config struct {
	AppAddr            string
	AppBaseURL         string
	SessionSecret      string
	BackendURL         string
	BackendTimeout     time.Duration
	GeoURL             string
	GeoToken           string
	NearbyRadius       string
	RateLimitPerMinute int
	TracingEnabled     bool
	TracingZipkinURL   string
}

// New loads configuration from environment variables, reading a .env file first if present.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		AppAddr:            envOr("APP_ADDR", ":8080"),
		AppBaseURL:         envOr("APP_BASE_URL", "http://localhost:8080"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		BackendURL:         strings.TrimRight(envOr("BACKEND_URL", "http://localhost:8000"), "/"),
		BackendTimeout:     durationOr("BACKEND_TIMEOUT", 10*time.Second),
		GeoURL:             strings.TrimRight(envOr("GEO_URL", "https://ipinfo.io"), "/"),
		GeoToken:           os.Getenv("GEO_TOKEN"),
		NearbyRadius:       envOr("NEARBY_RADIUS", "2"),
		RateLimitPerMinute: intOr("RATE_LIMIT_PER_MIN", 10),
		TracingEnabled:     boolOr("TRACING_ENABLED", false),
		TracingZipkinURL:   envOr("TRACING_ZIPKIN_URL", "http://localhost:9411/api/v2/spans"),
	}

	if cfg.SessionSecret == "" {
		return nil, ErrMissingSessionSecret
	}

	return cfg, nil
}

func (c *Config) GetAppAddr() string               { return c.AppAddr }
func (c *Config) GetAppBaseURL() string            { return c.AppBaseURL }
func (c *Config) GetSessionSecret() string         { return c.SessionSecret }
func (c *Config) GetBackendURL() string            { return c.BackendURL }
func (c *Config) GetBackendTimeout() time.Duration { return c.BackendTimeout }
func (c *Config) GetGeoURL() string                { return c.GeoURL }
func (c *Config) GetGeoToken() string              { return c.GeoToken }
func (c *Config) GetNearbyRadius() string          { return c.NearbyRadius }
func (c *Config) GetRateLimitPerMinute() int       { return c.RateLimitPerMinute }
func (c *Config) GetTracingEnabled() bool          { return c.TracingEnabled }
func (c *Config) GetTracingZipkinURL() string      { return c.TracingZipkinURL }

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid duration for %s=%q, using %s", key, v, fallback)
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
		log.Printf("invalid integer for %s=%q, using %d", key, v, fallback)
	}
	return fallback
}

func boolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid boolean for %s=%q, using %t", key, v, fallback)
	}
	return fallback
}
