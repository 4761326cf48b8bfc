package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "storm_alertd"

// Poll outcome label values.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeMalformed = "malformed_payload"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the poll loop.
type Metrics struct {
	Polls                *prometheus.CounterVec // labels: outcome={success,transport_error,malformed_payload}
	AlertsFetched        prometheus.Counter
	AlertsNovel          prometheus.Counter
	NotificationsSent    prometheus.Counter
	NotificationFailures prometheus.Counter
	MirrorFailures       prometheus.Counter
	AcknowledgedAlerts   prometheus.Gauge
	PollDuration         prometheus.Histogram
	LocationLookups      *prometheus.CounterVec // labels: outcome={success,empty,error}
}

// NewMetrics creates and registers all poll loop metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Polls,
		m.AlertsFetched,
		m.AlertsNovel,
		m.NotificationsSent,
		m.NotificationFailures,
		m.MirrorFailures,
		m.AcknowledgedAlerts,
		m.PollDuration,
		m.LocationLookups,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Poll cycles by outcome.",
		}, []string{"outcome"}),
		AlertsFetched: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_fetched_total",
			Help:      "Total alerts parsed from the active alerts feed.",
		}),
		AlertsNovel: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_novel_total",
			Help:      "Total alerts seen for the first time.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_sent_total",
			Help:      "Total notifications accepted by every sink.",
		}),
		NotificationFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Total notifications rejected by at least one user-facing sink.",
		}),
		MirrorFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mirror_failures_total",
			Help:      "Total alerts the Kafka mirror failed to publish.",
		}),
		AcknowledgedAlerts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "acknowledged_alerts",
			Help:      "Alert identities acknowledged since startup.",
		}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Duration of a complete fetch-parse-dispatch cycle.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LocationLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "location_lookups_total",
			Help:      "Reverse geocoding requests for the monitored point, by outcome.",
		}, []string{"outcome"}),
	}
}
