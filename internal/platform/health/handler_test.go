package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.Register(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestLiveness(t *testing.T) {
	rec := serve(New("test"), "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"alive"}`, rec.Body.String())
}

func TestReadiness(t *testing.T) {
	t.Run("all checks up", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return nil })
		h.RegisterCheck("redis", func(context.Context) error { return nil })

		rec := serve(h, "/health/ready")
		require.Equal(t, http.StatusOK, rec.Code)
		var res ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, map[string]string{"database": "up", "redis": "up"}, res.Checks)
	})

	t.Run("one check down", func(t *testing.T) {
		h := New("test")
		h.RegisterCheck("database", func(context.Context) error { return nil })
		h.RegisterCheck("redis", func(context.Context) error { return errors.New("connection refused") })

		rec := serve(h, "/health/ready")
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var res ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "not_ready", res.Status)
		assert.Equal(t, "down: connection refused", res.Checks["redis"])
	})

	t.Run("hung check times out", func(t *testing.T) {
		h := New("test").WithCheckTimeout(20 * time.Millisecond)
		h.RegisterCheck("database", func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})

		rec := serve(h, "/health/ready")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestStatus(t *testing.T) {
	rec := serve(New("staging"), "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var res StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "healthy", res.Status)
	assert.Equal(t, "staging", res.Environment)
}

func TestStatusReportsDegradedDetail(t *testing.T) {
	h := New("test")
	h.RegisterDetail("data_circuit", func() (string, bool) { return "open", true })

	rec := serve(h, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	var res StatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "degraded", res.Status)
	assert.Equal(t, "open", res.Details["data_circuit"])
}
