package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "ArchitectTracker"

// PathsConfig locates the tracker's own documents and the game's snapshot files
type PathsConfig struct {
	// Directory holding the facility store, carrier ledger, settings and event log
	DataDir string `mapstructure:"data_dir" validate:"required"`

	// Directory the game writes its journal and snapshot files to
	GameDir string `mapstructure:"game_dir"`

	FacilityFile string `mapstructure:"facility_file" validate:"required"`
	CarrierFile  string `mapstructure:"carrier_file" validate:"required"`
	SettingsFile string `mapstructure:"settings_file" validate:"required"`
	MarketFile   string `mapstructure:"market_file" validate:"required"`
	CargoFile    string `mapstructure:"cargo_file" validate:"required"`
}

// FacilityPath is the facility store document
func (p PathsConfig) FacilityPath() string { return p.inDataDir(p.FacilityFile) }

// CarrierPath is the carrier ledger document
func (p PathsConfig) CarrierPath() string { return p.inDataDir(p.CarrierFile) }

// SettingsPath is the display preferences document
func (p PathsConfig) SettingsPath() string { return p.inDataDir(p.SettingsFile) }

// MarketPath is the game's market snapshot
func (p PathsConfig) MarketPath() string { return p.inGameDir(p.MarketFile) }

// CargoPath is the game's ship cargo snapshot
func (p PathsConfig) CargoPath() string { return p.inGameDir(p.CargoFile) }

func (p PathsConfig) inDataDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.DataDir, name)
}

func (p PathsConfig) inGameDir(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.GameDir, name)
}

// DefaultDataDir returns the per-OS application data directory
func DefaultDataDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appDirName), nil
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", appDirName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", appDirName), nil
}

// DefaultGameDir returns where the game client writes its journals
func DefaultGameDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Saved Games", "Frontier Developments", "Elite Dangerous"), nil
}
