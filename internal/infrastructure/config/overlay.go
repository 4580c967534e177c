package config

// OverlayConfig holds the live overlay websocket configuration
type OverlayConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listen address; only loopback hosts are accepted
	Address string `mapstructure:"address" validate:"required,hostname_port"`

	// Websocket endpoint path
	Path string `mapstructure:"path" validate:"required,startswith=/"`
}
