package config

import "time"

// JournalConfig holds journal tailing configuration
type JournalConfig struct {
	// Fallback re-read interval when no filesystem events arrive
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"min=0"`

	// Upper bound on journal re-reads per second
	MaxReadsPerSecond float64 `mapstructure:"max_reads_per_second" validate:"gt=0"`
}
