package config

// DisplayConfig holds the defaults for display preferences. Values saved in
// the settings file override them.
type DisplayConfig struct {
	// Ship hold size used for trip estimates
	CargoCapacity int `mapstructure:"cargo_capacity" validate:"min=1"`

	// Hide materials that are fully provided
	HideProvided bool `mapstructure:"hide_provided"`

	// Order the facility list by system first
	SortBySystem bool `mapstructure:"sort_by_system"`

	// Only show facilities in this system (empty shows all)
	SelectedSystem string `mapstructure:"selected_system"`
}
