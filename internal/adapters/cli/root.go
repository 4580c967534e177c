package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile   string
	outputFormat string
	verbose      bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "architect-tracker",
		Short: "Architect Tracker - colonisation construction supply tracker",
		Long: `Architect Tracker follows construction depots, your fleet carrier and
your ship's hold, and shows what is still needed to finish each site.

Examples:
  architect-tracker watch
  architect-tracker status
  architect-tracker status "Orbital Construction Site: Alpha"
  architect-tracker facilities list --system Sol
  architect-tracker carrier import fleetcarrier.json
  architect-tracker replay Journal.2025-04-01T120000.01.log
  architect-tracker events --kind CargoTransfer --limit 20`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch outputFormat {
			case formatTable, formatJSON, formatYAML:
				return nil
			}
			return fmt.Errorf("unsupported output format %q (use table, json or yaml)", outputFormat)
		},
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Path to config file (default: ./config.yaml or the data directory)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", formatTable,
		"Output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Add command groups
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewFacilitiesCommand())
	rootCmd.AddCommand(NewCarrierCommand())
	rootCmd.AddCommand(NewReplayCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewEventsCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
