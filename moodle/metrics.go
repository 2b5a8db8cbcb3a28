package moodle

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK               = "ok"
	outcomeTransportError   = "transport_error"
	outcomeHTTPError        = "http_error"
	outcomeApplicationError = "application_error"
	outcomeDecodeError      = "decode_error"
	outcomeInvalidParams    = "invalid_params"
)

// Metrics records upstream call counts and latencies per web-service
// function.
type Metrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the upstream collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lms_gateway",
			Subsystem: "upstream",
			Name:      "calls_total",
			Help:      "LMS web-service calls by function and outcome.",
		}, []string{"function", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lms_gateway",
			Subsystem: "upstream",
			Name:      "call_duration_seconds",
			Help:      "LMS web-service call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"function"}),
	}

	for _, c := range []prometheus.Collector{m.calls, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(function, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calls.WithLabelValues(function, outcome).Inc()
	m.duration.WithLabelValues(function).Observe(elapsed.Seconds())
}
