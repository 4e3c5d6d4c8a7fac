package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dashhandler "tenantdash/internal/dashboard/handler"
	dashmetrics "tenantdash/internal/dashboard/metrics"
	"tenantdash/internal/dashboard/ports"
	"tenantdash/internal/dashboard/service"
	datastore "tenantdash/internal/dashboard/store/data"
	viewstore "tenantdash/internal/dashboard/store/view"
	"tenantdash/internal/platform/config"
	"tenantdash/internal/platform/database"
	"tenantdash/internal/platform/health"
	redisclient "tenantdash/internal/platform/redis"
	"tenantdash/internal/seeder"
	"tenantdash/internal/session"
	authmw "tenantdash/pkg/platform/middleware/auth"
	"tenantdash/pkg/platform/middleware/request"
)

type app struct {
	router    http.Handler
	db        *database.Pool
	redis     *redisclient.Client
	resilient *datastore.ResilientStore
	logger    *slog.Logger
}

func buildApp(ctx context.Context, cfg config.Server, log *slog.Logger) (*app, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &app{logger: log}
	metrics := dashmetrics.NewWith(reg)

	data, err := a.buildDataService(ctx, cfg, reg, metrics)
	if err != nil {
		a.close()
		return nil, err
	}
	views, err := a.buildViewStore(ctx, cfg, reg)
	if err != nil {
		a.close()
		return nil, err
	}

	svc, err := service.New(data, views,
		service.WithLogger(log),
		service.WithMetrics(metrics),
		service.WithLoadTimeout(cfg.Dashboard.LoadTimeout),
		service.WithFanOutLimit(cfg.Dashboard.FanOutLimit),
		service.WithPageSize(cfg.Dashboard.PageSize),
	)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("create dashboard service: %w", err)
	}

	jwtService := session.NewJWTService(cfg.JWTSigningKey, cfg.JWTAudience, cfg.TokenTTL)
	dashboard := dashhandler.New(svc, log)

	healthHandler := health.New(cfg.Environment)
	if a.db != nil {
		healthHandler.RegisterCheck("postgres", a.db.Health)
	}
	if a.redis != nil {
		healthHandler.RegisterCheck("redis", a.redis.Health)
	}
	if a.resilient != nil {
		healthHandler.RegisterDetail("data_circuit", func() (string, bool) {
			state := a.resilient.CircuitState()
			return state, state == "open"
		})
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(log))
	r.Use(request.Logger(log))
	r.Use(request.LatencyMiddleware(request.NewMetricsWith(reg)))

	healthHandler.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireSession(jwtService, log))
		dashboard.Register(r)
	})

	a.router = r
	return a, nil
}

func (a *app) buildDataService(ctx context.Context, cfg config.Server, reg prometheus.Registerer, metrics *dashmetrics.Metrics) (ports.DataService, error) {
	if cfg.DatabaseURL == "" {
		mem := datastore.NewInMemory()
		if _, err := seeder.New(mem, a.logger).SeedAll(ctx); err != nil {
			return nil, fmt.Errorf("seed demo data: %w", err)
		}
		a.logger.Warn("DATABASE_URL not set, serving seeded in-memory demo data")
		return mem, nil
	}

	pool, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL), reg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.db = pool
	a.resilient = datastore.NewResilient(datastore.NewPostgres(pool.DB()), a.logger,
		datastore.WithResilientMetrics(metrics),
	)
	return a.resilient, nil
}

func (a *app) buildViewStore(ctx context.Context, cfg config.Server, reg prometheus.Registerer) (ports.ViewStore, error) {
	client, err := redisclient.New(ctx, cfg.Redis, reg)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	if client == nil {
		return viewstore.NewInMemory(cfg.Dashboard.ViewTTL), nil
	}
	a.redis = client
	return viewstore.NewRedis(client.Client, cfg.Dashboard.ViewTTL), nil
}

func (a *app) recordPoolStats(ctx context.Context, every time.Duration) {
	if a.db == nil && a.redis == nil {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.db != nil {
				a.db.RecordPoolStats()
			}
			if a.redis != nil {
				a.redis.RecordPoolStats()
			}
		}
	}
}

func (a *app) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close database pool", "error", err)
		}
	}
}
