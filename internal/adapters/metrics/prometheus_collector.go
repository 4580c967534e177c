package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// Namespace for all metrics
	namespace = "architect_tracker"
	// Subsystem for reconciliation engine metrics
	subsystem = "core"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalTrackerCollector is the singleton tracker metrics collector.
	// Set by SetGlobalTrackerCollector() when metrics are enabled.
	globalTrackerCollector TrackerMetricsRecorder
)

// TrackerMetricsRecorder defines the interface for recording reconciliation events.
// Application code records through the package-level helpers below, which are
// no-ops while metrics are disabled.
type TrackerMetricsRecorder interface {
	RecordEvent(kind, outcome string)
	RecordPersistenceError(store string)
	RecordSkippedEntries(source string, count int)
	SetFacilitiesTracked(count int)
	SetCarrierUnits(units int)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalTrackerCollector sets the global tracker metrics collector
func SetGlobalTrackerCollector(collector TrackerMetricsRecorder) {
	globalTrackerCollector = collector
}

// RecordEvent records a routed game event globally
func RecordEvent(kind, outcome string) {
	if globalTrackerCollector != nil {
		globalTrackerCollector.RecordEvent(kind, outcome)
	}
}

// RecordPersistenceError records a failed write of a store file globally
func RecordPersistenceError(store string) {
	if globalTrackerCollector != nil {
		globalTrackerCollector.RecordPersistenceError(store)
	}
}

// RecordSkippedEntries records malformed payload entries that were skipped
func RecordSkippedEntries(source string, count int) {
	if globalTrackerCollector != nil && count > 0 {
		globalTrackerCollector.RecordSkippedEntries(source, count)
	}
}

// SetFacilitiesTracked publishes the current size of the facility store
func SetFacilitiesTracked(count int) {
	if globalTrackerCollector != nil {
		globalTrackerCollector.SetFacilitiesTracked(count)
	}
}

// SetCarrierUnits publishes the total units held by the carrier
func SetCarrierUnits(units int) {
	if globalTrackerCollector != nil {
		globalTrackerCollector.SetCarrierUnits(units)
	}
}
