package config

// MetricsConfig controls the Prometheus endpoint served while watching
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listener for /metrics; keep it on localhost unless scraped remotely
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`
}
