package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess  = "success"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// AdminMetrics records overview latency, mutation outcomes and swallowed audit failures.
type AdminMetrics struct {
	overviewDuration prometheus.Histogram
	overviewFailures prometheus.Counter
	auditFailures    *prometheus.CounterVec
	mutations        *prometheus.CounterVec
	collisions       prometheus.Gauge
}

// NewAdminMetrics registers the admin metrics on the provided registerer.
// A nil registerer yields a no-op recorder.
func NewAdminMetrics(reg prometheus.Registerer) *AdminMetrics {
	if reg == nil {
		return &AdminMetrics{}
	}
	m := &AdminMetrics{
		overviewDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "admin_overview_duration_seconds",
			Help:    "Time to fetch and derive the admin overview.",
			Buckets: prometheus.DefBuckets,
		}),
		overviewFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admin_overview_failures_total",
			Help: "Overview requests aborted by a data store failure.",
		}),
		auditFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_audit_failures_total",
			Help: "Activity log writes that failed and were swallowed.",
		}, []string{"action"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admin_mutations_total",
			Help: "Admin mutations by action and result.",
		}, []string{"action", "result"}),
		collisions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "admin_customer_display_id_collisions",
			Help: "Display ids shared by more than one customer in the last overview.",
		}),
	}
	reg.MustRegister(m.overviewDuration, m.overviewFailures, m.auditFailures, m.mutations, m.collisions)
	return m
}

func (m *AdminMetrics) ObserveOverview(d time.Duration) {
	if m == nil || m.overviewDuration == nil {
		return
	}
	m.overviewDuration.Observe(d.Seconds())
}

func (m *AdminMetrics) IncOverviewFailure() {
	if m == nil || m.overviewFailures == nil {
		return
	}
	m.overviewFailures.Inc()
}

func (m *AdminMetrics) IncAuditFailure(action string) {
	if m == nil || m.auditFailures == nil {
		return
	}
	m.auditFailures.WithLabelValues(normalizeLabel(action)).Inc()
}

func (m *AdminMetrics) IncMutation(action, result string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(action), normalizeLabel(result)).Inc()
}

func (m *AdminMetrics) SetDisplayIDCollisions(n int) {
	if m == nil || m.collisions == nil {
		return
	}
	m.collisions.Set(float64(n))
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
