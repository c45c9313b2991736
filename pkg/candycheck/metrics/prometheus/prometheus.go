package prommetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements candycheck.Metrics using Prometheus.
type Metrics struct {
	verificationsTotal    *prometheus.CounterVec
	verificationDuration  *prometheus.HistogramVec
	sandboxRedirectsTotal prometheus.Counter
}

// NewMetrics creates a new Prometheus metrics implementation.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		verificationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "receipt_verifications_total",
			Help:      "Total number of receipt verification attempts.",
		}, []string{"vendor", "environment", "outcome"}),

		verificationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "receipt_verification_duration_seconds",
			Help:      "Latency of receipt verification calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"vendor"}),

		sandboxRedirectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sandbox_redirects_total",
			Help:      "Total number of verifications replayed against the opposite App Store environment.",
		}),
	}
}

func (m *Metrics) RecordVerification(vendor, environment, outcome string, duration time.Duration) {
	if environment == "" {
		environment = "unknown"
	}
	m.verificationsTotal.WithLabelValues(vendor, environment, outcome).Inc()
	m.verificationDuration.WithLabelValues(vendor).Observe(duration.Seconds())
}

func (m *Metrics) RecordSandboxRedirect() {
	m.sandboxRedirectsTotal.Inc()
}
