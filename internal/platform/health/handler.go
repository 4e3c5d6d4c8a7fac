// Package health serves liveness, readiness and status probes for the dashboard.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"tenantdash/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc probes one backing dependency; nil means reachable.
type CheckFunc func(ctx context.Context) error

// DetailFunc reports a named piece of runtime state for /health. degraded
// flips the overall status without failing readiness.
type DetailFunc func() (value string, degraded bool)

const DefaultCheckTimeout = 2 * time.Second

type Handler struct {
	started      time.Time
	environment  string
	checkTimeout time.Duration

	mu      sync.RWMutex
	checks  map[string]CheckFunc
	details map[string]DetailFunc
}

func New(environment string) *Handler {
	return &Handler{
		started:      time.Now(),
		environment:  environment,
		checkTimeout: DefaultCheckTimeout,
		checks:       map[string]CheckFunc{},
		details:      map[string]DetailFunc{},
	}
}

// WithCheckTimeout overrides the per-check deadline used by readiness.
func (h *Handler) WithCheckTimeout(d time.Duration) *Handler {
	h.checkTimeout = d
	return h
}

// RegisterCheck adds a dependency probe to /health/ready.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	h.checks[name] = check
	h.mu.Unlock()
}

// RegisterDetail adds a state reporter to /health.
func (h *Handler) RegisterDetail(name string, detail DetailFunc) {
	h.mu.Lock()
	h.details[name] = detail
	h.mu.Unlock()
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

// HandleLiveness answers 200 whenever the process can serve HTTP.
func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness probes every registered dependency in parallel, each under
// its own deadline, and answers 503 when any probe fails.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	checks := make(map[string]CheckFunc, len(h.checks))
	for name, check := range h.checks {
		checks[name] = check
	}
	h.mu.RUnlock()

	var (
		mu      sync.Mutex
		g       errgroup.Group
		results = make(map[string]string, len(checks))
		ready   = true
	)
	for name, check := range checks {
		g.Go(func() error {
			ctx, cancel := context.WithTimeout(r.Context(), h.checkTimeout)
			defer cancel()
			outcome := "up"
			err := check(ctx)
			if err != nil {
				outcome = "down: " + err.Error()
			}
			mu.Lock()
			results[name] = outcome
			ready = ready && err == nil
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status, code := "ready", http.StatusOK
	if !ready {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, code, ReadinessResponse{Status: status, Checks: results})
}

type StatusResponse struct {
	Status        string            `json:"status"`
	Version       string            `json:"version"`
	Environment   string            `json:"environment"`
	UptimeSeconds int64             `json:"uptime_seconds"`
	Timestamp     string            `json:"timestamp"`
	Details       map[string]string `json:"details,omitempty"`
}

// HandleStatus always answers 200; status is "degraded" when any detail says so.
func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	h.mu.RLock()
	details := make(map[string]string, len(h.details))
	degraded := false
	for name, detail := range h.details {
		value, bad := detail()
		details[name] = value
		degraded = degraded || bad
	}
	h.mu.RUnlock()

	status := "healthy"
	if degraded {
		status = "degraded"
	}
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        status,
		Version:       Version,
		Environment:   h.environment,
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Details:       details,
	})
}
