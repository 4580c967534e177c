package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage Architect Tracker configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (AT_* prefix)
2. Config file (config.yaml)
3. Default values

Display preferences are stored in settings.json in the data directory
and override the display section of the configuration.

Examples:
  architect-tracker config show
  architect-tracker config set-capacity 784
  architect-tracker config set-hide-provided true
  architect-tracker config set-system "HIP 12345"
  architect-tracker config set-sort-by-system false`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCapacityCommand())
	cmd.AddCommand(newConfigSetBoolCommand("set-hide-provided", "Hide materials that are fully provided",
		(*config.SettingsHandler).SetHideProvided))
	cmd.AddCommand(newConfigSetBoolCommand("set-sort-by-system", "Group the facility list by system",
		(*config.SettingsHandler).SetSortBySystem))
	cmd.AddCommand(newConfigSetSystemCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			settings, err := config.NewSettingsHandler(cfg.Paths.SettingsPath())
			if err != nil {
				return err
			}
			saved, err := settings.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load settings: %v\n\n", err)
				saved = &config.Settings{}
			}
			display := saved.Apply(cfg.Display)

			fmt.Println("Architect Tracker Configuration")
			fmt.Println("===============================")

			fmt.Println("Paths:")
			fmt.Printf("  Data directory:   %s\n", cfg.Paths.DataDir)
			fmt.Printf("  Game directory:   %s\n", cfg.Paths.GameDir)
			fmt.Printf("  Facilities:       %s\n", cfg.Paths.FacilityPath())
			fmt.Printf("  Carrier ledger:   %s\n", cfg.Paths.CarrierPath())
			fmt.Printf("  Settings:         %s\n", settings.GetSettingsPath())

			fmt.Println("\nDisplay:")
			fmt.Printf("  Cargo capacity:   %d\n", display.CargoCapacity)
			fmt.Printf("  Hide provided:    %t\n", display.HideProvided)
			fmt.Printf("  Sort by system:   %t\n", display.SortBySystem)
			system := display.SelectedSystem
			if system == "" {
				system = "(all systems)"
			}
			fmt.Printf("  Selected system:  %s\n", system)

			fmt.Println("\nEvent log:")
			if cfg.Database.Disabled {
				fmt.Println("  (disabled)")
			} else {
				fmt.Printf("  Type:             %s\n", cfg.Database.Type)
				if cfg.Database.URL != "" {
					fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
				} else if cfg.Database.Type == "sqlite" {
					fmt.Printf("  Path:             %s\n", cfg.Database.Path)
				} else {
					fmt.Printf("  Host:             %s:%d\n", cfg.Database.Host, cfg.Database.Port)
					fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				}
			}

			fmt.Println("\nOverlay:")
			fmt.Printf("  Enabled:          %t\n", cfg.Overlay.Enabled)
			fmt.Printf("  Endpoint:         ws://%s%s\n", cfg.Overlay.Address, cfg.Overlay.Path)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

func newConfigSetCapacityCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-capacity <units>",
		Short: "Set the ship cargo capacity used for trip counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid capacity %q: %w", args[0], err)
			}
			settings, err := settingsHandler()
			if err != nil {
				return err
			}
			if err := settings.SetCargoCapacity(capacity); err != nil {
				return err
			}
			fmt.Printf("✓ Cargo capacity set to %d\n", capacity)
			return nil
		},
	}
}

func newConfigSetBoolCommand(use, short string, set func(*config.SettingsHandler, bool) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <true|false>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value %q: expected true or false", args[0])
			}
			settings, err := settingsHandler()
			if err != nil {
				return err
			}
			if err := set(settings, value); err != nil {
				return err
			}
			fmt.Printf("✓ %s: %t\n", use[len("set-"):], value)
			return nil
		},
	}
}

func newConfigSetSystemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-system [system]",
		Short: "Limit views to one system; omit the name to show all",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			system := ""
			if len(args) == 1 {
				system = args[0]
			}
			settings, err := settingsHandler()
			if err != nil {
				return err
			}
			if err := settings.SetSelectedSystem(system); err != nil {
				return err
			}
			if system == "" {
				fmt.Println("✓ Showing all systems")
			} else {
				fmt.Printf("✓ Showing system %s\n", system)
			}
			return nil
		},
	}
}

// settingsHandler opens the settings file named by the configuration
func settingsHandler() (*config.SettingsHandler, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	return config.NewSettingsHandler(cfg.Paths.SettingsPath())
}

// maskPassword hides the password in a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}
