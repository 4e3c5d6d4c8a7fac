package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"tenantdash/pkg/secrets"
)

// DevJWTSigningKey is used when JWT_SIGNING_KEY is unset outside production.
const DevJWTSigningKey = "dev-secret-key-change-in-production"

// Server captures process level configuration.
type Server struct {
	Addr          string
	Environment   string
	LogLevel      string
	JWTSigningKey string
	JWTAudience   string
	TokenTTL      time.Duration
	DatabaseURL   string
	Redis         RedisConfig
	Dashboard     Dashboard
}

// Dashboard tunes aggregation and view handling.
type Dashboard struct {
	LoadTimeout time.Duration
	FanOutLimit int
	ViewTTL     time.Duration
	PageSize    int
}

// RedisConfig configures the optional Redis view store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// IsProduction reports whether the process runs with production settings.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Malformed values are errors rather than silently replaced by defaults.
func FromEnv() (Server, error) {
	e := &envReader{}
	cfg := Server{
		Addr:          e.str("DASHBOARD_ADDR", ":8080"),
		Environment:   e.str("ENVIRONMENT", "dev"),
		LogLevel:      e.str("LOG_LEVEL", "info"),
		JWTSigningKey: e.str("JWT_SIGNING_KEY", ""),
		JWTAudience:   e.str("JWT_AUDIENCE", ""),
		TokenTTL:      e.duration("TOKEN_TTL", 15*time.Minute),
		DatabaseURL:   e.str("DATABASE_URL", ""),
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.integer("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.integer("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Dashboard: Dashboard{
			LoadTimeout: e.duration("DASHBOARD_LOAD_TIMEOUT", 10*time.Second),
			FanOutLimit: e.integer("DASHBOARD_FANOUT_LIMIT", 8),
			ViewTTL:     e.duration("VIEW_TTL", 30*time.Minute),
			PageSize:    e.integer("PAGE_SIZE", 10),
		},
	}
	if e.err != nil {
		return Server{}, e.err
	}

	if cfg.JWTSigningKey == "" {
		if cfg.IsProduction() {
			return Server{}, fmt.Errorf("JWT_SIGNING_KEY is required in production")
		}
		cfg.JWTSigningKey = DevJWTSigningKey
	}
	if cfg.IsProduction() && len(cfg.JWTSigningKey) < secrets.MinKeyBytes {
		return Server{}, fmt.Errorf("JWT_SIGNING_KEY must be at least %d bytes in production", secrets.MinKeyBytes)
	}
	if cfg.Dashboard.FanOutLimit < 0 {
		return Server{}, fmt.Errorf("DASHBOARD_FANOUT_LIMIT must not be negative")
	}
	if cfg.Dashboard.PageSize <= 0 {
		return Server{}, fmt.Errorf("PAGE_SIZE must be positive")
	}
	return cfg, nil
}

// envReader keeps the first parse error so FromEnv can read every key in one pass.
type envReader struct {
	err error
}

func (e *envReader) str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (e *envReader) duration(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return d
}

func (e *envReader) integer(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil && e.err == nil {
		e.err = fmt.Errorf("invalid %s: %w", key, err)
	}
	return n
}
