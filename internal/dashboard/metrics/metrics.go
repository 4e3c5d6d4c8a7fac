package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	LoadDuration          prometheus.Histogram
	TenantsInScope        prometheus.Histogram
	FetchFailures         *prometheus.CounterVec
	MedicalDevicesDeduped prometheus.Counter
	ViewsOpened           prometheus.Counter
	DataCircuitOpen       prometheus.Gauge
	FallbacksServed       *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the dashboard metrics on reg.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tenantdash_dashboard_load_duration_seconds",
			Help:    "Duration of full dashboard aggregations",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		TenantsInScope: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tenantdash_dashboard_tenants_in_scope",
			Help:    "Number of tenants aggregated per dashboard load",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		FetchFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantdash_dashboard_fetch_failures_total",
			Help: "Per-tenant data service fetches that failed and were counted as empty",
		}, []string{"resource"}),
		MedicalDevicesDeduped: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantdash_medical_device_records_deduplicated_total",
			Help: "Medical device records collapsed into an already seen device",
		}),
		ViewsOpened: f.NewCounter(prometheus.CounterOpts{
			Name: "tenantdash_dashboard_views_opened_total",
			Help: "Dashboard views created",
		}),
		DataCircuitOpen: f.NewGauge(prometheus.GaugeOpts{
			Name: "tenantdash_data_circuit_open",
			Help: "1 while the data service circuit breaker is open",
		}),
		FallbacksServed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tenantdash_data_fallbacks_served_total",
			Help: "Data service reads answered from the last known good result",
		}, []string{"call"}),
	}
}

func (m *Metrics) ObserveLoad(start time.Time, tenants int) {
	m.LoadDuration.Observe(time.Since(start).Seconds())
	m.TenantsInScope.Observe(float64(tenants))
}

func (m *Metrics) IncrementFetchFailure(resource string) {
	m.FetchFailures.WithLabelValues(resource).Inc()
}

func (m *Metrics) AddDeduplicated(n int) {
	if n > 0 {
		m.MedicalDevicesDeduped.Add(float64(n))
	}
}

func (m *Metrics) IncrementViewsOpened() {
	m.ViewsOpened.Inc()
}

func (m *Metrics) SetCircuitOpen(open bool) {
	if open {
		m.DataCircuitOpen.Set(1)
		return
	}
	m.DataCircuitOpen.Set(0)
}

func (m *Metrics) IncrementFallback(call string) {
	m.FallbacksServed.WithLabelValues(call).Inc()
}
