package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Config holds database connection configuration.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	PingTimeout     time.Duration
}

// DefaultConfig returns defaults sized for a read-only fan-out workload.
func DefaultConfig(url string) Config {
	return Config{
		URL:             url,
		MaxOpenConns:    25,
		MaxIdleConns:    8,
		ConnMaxLifetime: 5 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
}

// Pool wraps a *sql.DB with health checking and pool metrics.
type Pool struct {
	db      *sql.DB
	inUse   prometheus.Gauge
	idle    prometheus.Gauge
	waitSum prometheus.Gauge
}

// New opens the pgx-backed pool and pings it. Returns nil if the URL is empty.
func New(ctx context.Context, cfg Config, reg prometheus.Registerer) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close() //nolint:errcheck // best-effort cleanup on init failure
		return nil, fmt.Errorf("ping database: %w", err)
	}

	f := promauto.With(reg)
	return &Pool{
		db: db,
		inUse: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenantdash_db_pool_in_use_conns",
			Help: "Database connections currently in use",
		}),
		idle: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenantdash_db_pool_idle_conns",
			Help: "Idle database connections",
		}),
		waitSum: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenantdash_db_pool_wait_seconds",
			Help: "Cumulative time spent waiting for a database connection",
		}),
	}, nil
}

// DB returns the underlying *sql.DB for query operations.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// Health checks if the database is reachable.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("database not configured")
	}
	return p.db.PingContext(ctx)
}

// RecordPoolStats copies sql.DBStats into the pool gauges.
// Call periodically from a background goroutine.
func (p *Pool) RecordPoolStats() {
	if p == nil || p.db == nil {
		return
	}
	stats := p.db.Stats()
	p.inUse.Set(float64(stats.InUse))
	p.idle.Set(float64(stats.Idle))
	p.waitSum.Set(stats.WaitDuration.Seconds())
}

// Close closes the database connection pool.
func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
