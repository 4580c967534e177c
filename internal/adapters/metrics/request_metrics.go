package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetricsCollector times the commands and queries sent through the mediator
type RequestMetricsCollector struct {
	requestDuration *prometheus.HistogramVec
	requestsTotal   *prometheus.CounterVec
}

// NewRequestMetricsCollector creates the mediator request metrics.
// Handlers are local file and database work, hence the millisecond buckets.
func NewRequestMetricsCollector() *RequestMetricsCollector {
	return &RequestMetricsCollector{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "request_duration_seconds",
				Help:      "Handler duration per mediator request",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
			[]string{"request", "kind"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Mediator requests handled, by request, kind and status",
			},
			[]string{"request", "kind", "status"},
		),
	}
}

// Register adds the request metrics to the registry; a no-op while metrics are off
func (c *RequestMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}
	for _, metric := range []prometheus.Collector{c.requestDuration, c.requestsTotal} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}
	return nil
}

// RecordRequest records one handled request
func (c *RequestMetricsCollector) RecordRequest(name string, seconds float64, err error) {
	kind := RequestKind(name)
	status := "ok"
	if err != nil {
		status = "error"
	}
	c.requestDuration.WithLabelValues(name, kind).Observe(seconds)
	c.requestsTotal.WithLabelValues(name, kind, status).Inc()
}

// RequestKind classifies a request name by its CQRS suffix
func RequestKind(name string) string {
	switch {
	case strings.HasSuffix(name, "Command"):
		return "command"
	case strings.HasSuffix(name, "Query"):
		return "query"
	default:
		return "other"
	}
}
