package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Display  DisplayConfig  `mapstructure:"display"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Overlay  OverlayConfig  `mapstructure:"overlay"`
	Journal  JournalConfig  `mapstructure:"journal"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if dataDir, err := DefaultDataDir(); err == nil {
			v.AddConfigPath(dataDir)
		}
	}

	v.SetEnvPrefix("AT") // AT_ prefix for Architect Tracker
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	// Read config file (optional - don't error if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// DATABASE_URL without prefix selects a postgres event log
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
		if !v.IsSet("database.type") {
			v.Set("database.type", "postgres")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := SetDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("failed to apply defaults: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		defaultCfg := &Config{}
		_ = SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// bindEnvKeys makes AutomaticEnv see keys that have no config file entry.
// Unmarshal only consults the environment for keys viper already knows.
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"paths.data_dir", "paths.game_dir", "paths.facility_file", "paths.carrier_file",
		"paths.settings_file", "paths.market_file", "paths.cargo_file",
		"display.cargo_capacity", "display.hide_provided", "display.sort_by_system", "display.selected_system",
		"database.type", "database.url", "database.path", "database.host", "database.port",
		"database.user", "database.password", "database.name", "database.sslmode",
		"logging.level", "logging.format", "logging.output", "logging.file_path", "logging.include_caller",
		"metrics.enabled", "metrics.host", "metrics.port", "metrics.path",
		"overlay.enabled", "overlay.address", "overlay.path",
		"journal.poll_interval", "journal.max_reads_per_second",
	} {
		_ = v.BindEnv(key)
	}
}
