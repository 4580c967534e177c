package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// TrackerMetricsCollector handles facility store and carrier ledger metrics
type TrackerMetricsCollector struct {
	eventsTotal            *prometheus.CounterVec
	persistenceErrorsTotal *prometheus.CounterVec
	skippedEntriesTotal    *prometheus.CounterVec
	facilitiesTracked      prometheus.Gauge
	carrierUnits           prometheus.Gauge
}

// NewTrackerMetricsCollector creates a new tracker metrics collector
func NewTrackerMetricsCollector() *TrackerMetricsCollector {
	return &TrackerMetricsCollector{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "events_total",
				Help:      "Total number of game events routed by kind and outcome",
			},
			[]string{"kind", "outcome"},
		),

		persistenceErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "persistence_errors_total",
				Help:      "Total number of failed store writes",
			},
			[]string{"store"},
		),

		skippedEntriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "skipped_entries_total",
				Help:      "Malformed payload entries skipped by source",
			},
			[]string{"source"},
		),

		facilitiesTracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "facilities_tracked",
				Help:      "Number of incomplete construction sites in the store",
			},
		),

		carrierUnits: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "carrier_units",
				Help:      "Total commodity units held by the fleet carrier",
			},
		),
	}
}

// Register registers all tracker metrics with the Prometheus registry
func (c *TrackerMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.eventsTotal,
		c.persistenceErrorsTotal,
		c.skippedEntriesTotal,
		c.facilitiesTracked,
		c.carrierUnits,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

func (c *TrackerMetricsCollector) RecordEvent(kind, outcome string) {
	c.eventsTotal.WithLabelValues(kind, outcome).Inc()
}

func (c *TrackerMetricsCollector) RecordPersistenceError(store string) {
	c.persistenceErrorsTotal.WithLabelValues(store).Inc()
}

func (c *TrackerMetricsCollector) RecordSkippedEntries(source string, count int) {
	c.skippedEntriesTotal.WithLabelValues(source).Add(float64(count))
}

func (c *TrackerMetricsCollector) SetFacilitiesTracked(count int) {
	c.facilitiesTracked.Set(float64(count))
}

func (c *TrackerMetricsCollector) SetCarrierUnits(units int) {
	c.carrierUnits.Set(float64(units))
}
