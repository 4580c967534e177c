package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings are the user's display preferences stored in settings.json.
// Unset fields fall back to the display section of the configuration.
type Settings struct {
	HideProvided   *bool   `json:"hide_provided,omitempty"`
	SortBySystem   *bool   `json:"sort_by_system,omitempty"`
	SelectedSystem *string `json:"selected_system,omitempty"`
	CargoCapacity  *int    `json:"cargo_capacity,omitempty"`
	SkippedVersion string  `json:"skipped_version,omitempty"`
}

// Apply overlays the saved preferences on display defaults
func (s *Settings) Apply(display DisplayConfig) DisplayConfig {
	if s == nil {
		return display
	}
	if s.HideProvided != nil {
		display.HideProvided = *s.HideProvided
	}
	if s.SortBySystem != nil {
		display.SortBySystem = *s.SortBySystem
	}
	if s.SelectedSystem != nil {
		display.SelectedSystem = *s.SelectedSystem
	}
	if s.CargoCapacity != nil && *s.CargoCapacity > 0 {
		display.CargoCapacity = *s.CargoCapacity
	}
	return display
}

// SettingsHandler manages loading and saving display preferences
type SettingsHandler struct {
	settingsPath string
}

// NewSettingsHandler creates a handler for the settings file at path
func NewSettingsHandler(path string) (*SettingsHandler, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create settings directory: %w", err)
	}
	return &SettingsHandler{settingsPath: path}, nil
}

// Load reads the settings from disk. A missing file gives empty settings.
func (h *SettingsHandler) Load() (*Settings, error) {
	if _, err := os.Stat(h.settingsPath); os.IsNotExist(err) {
		return &Settings{}, nil
	}

	data, err := os.ReadFile(h.settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	return &settings, nil
}

// Save writes the settings to disk
func (h *SettingsHandler) Save(settings *Settings) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(h.settingsPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}

// Update loads, mutates and saves the settings
func (h *SettingsHandler) Update(mutate func(*Settings) error) error {
	settings, err := h.Load()
	if err != nil {
		return err
	}
	if err := mutate(settings); err != nil {
		return err
	}
	return h.Save(settings)
}

// SetCargoCapacity stores the ship hold size
func (h *SettingsHandler) SetCargoCapacity(capacity int) error {
	if capacity < 1 {
		return fmt.Errorf("cargo capacity must be at least 1, got %d", capacity)
	}
	return h.Update(func(s *Settings) error {
		s.CargoCapacity = &capacity
		return nil
	})
}

// SetHideProvided stores whether provided materials are hidden
func (h *SettingsHandler) SetHideProvided(hide bool) error {
	return h.Update(func(s *Settings) error {
		s.HideProvided = &hide
		return nil
	})
}

// SetSortBySystem stores the facility list ordering
func (h *SettingsHandler) SetSortBySystem(sortBySystem bool) error {
	return h.Update(func(s *Settings) error {
		s.SortBySystem = &sortBySystem
		return nil
	})
}

// SetSelectedSystem stores the system filter; empty clears it
func (h *SettingsHandler) SetSelectedSystem(system string) error {
	return h.Update(func(s *Settings) error {
		s.SelectedSystem = &system
		return nil
	})
}

// GetSettingsPath returns the path to the settings file
func (h *SettingsHandler) GetSettingsPath() string {
	return h.settingsPath
}
