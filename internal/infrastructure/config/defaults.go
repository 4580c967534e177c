package config

import (
	"path/filepath"
	"time"
)

// DefaultCargoCapacity is the hold size assumed until the user sets one
const DefaultCargoCapacity = 720

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) error {
	// Paths defaults
	if cfg.Paths.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return err
		}
		cfg.Paths.DataDir = dir
	}
	if cfg.Paths.GameDir == "" {
		if dir, err := DefaultGameDir(); err == nil {
			cfg.Paths.GameDir = dir
		}
	}
	if cfg.Paths.FacilityFile == "" {
		cfg.Paths.FacilityFile = "construction_requirements.json"
	}
	if cfg.Paths.CarrierFile == "" {
		cfg.Paths.CarrierFile = "fleet_carrier_cargo.json"
	}
	if cfg.Paths.SettingsFile == "" {
		cfg.Paths.SettingsFile = "settings.json"
	}
	if cfg.Paths.MarketFile == "" {
		cfg.Paths.MarketFile = "Market.json"
	}
	if cfg.Paths.CargoFile == "" {
		cfg.Paths.CargoFile = "Cargo.json"
	}

	// Display defaults
	if cfg.Display.CargoCapacity == 0 {
		cfg.Display.CargoCapacity = DefaultCargoCapacity
	}

	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" {
		if cfg.Database.Path == "" {
			cfg.Database.Path = "events.db"
		}
		if cfg.Database.Path != ":memory:" && !filepath.IsAbs(cfg.Database.Path) {
			cfg.Database.Path = filepath.Join(cfg.Paths.DataDir, cfg.Database.Path)
		}
	}
	if cfg.Database.Type == "postgres" {
		if cfg.Database.Host == "" {
			cfg.Database.Host = "localhost"
		}
		if cfg.Database.Port == 0 {
			cfg.Database.Port = 5432
		}
		if cfg.Database.User == "" {
			cfg.Database.User = "architect"
		}
		if cfg.Database.Name == "" {
			cfg.Database.Name = "architect_tracker"
		}
		if cfg.Database.SSLMode == "" {
			cfg.Database.SSLMode = "disable"
		}
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 5
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Overlay defaults
	if cfg.Overlay.Address == "" {
		cfg.Overlay.Address = "localhost:8765"
	}
	if cfg.Overlay.Path == "" {
		cfg.Overlay.Path = "/ws"
	}

	// Journal defaults
	if cfg.Journal.PollInterval == 0 {
		cfg.Journal.PollInterval = 2 * time.Second
	}
	if cfg.Journal.MaxReadsPerSecond == 0 {
		cfg.Journal.MaxReadsPerSecond = 4
	}

	return nil
}
