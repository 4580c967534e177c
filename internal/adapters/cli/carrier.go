package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/application/carrier/queries"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

// NewCarrierCommand creates the carrier command with subcommands
func NewCarrierCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carrier",
		Short: "Fleet carrier cargo ledger",
		Long: `Show or load the fleet carrier cargo ledger.

The ledger is replaced by companion API carrier data and adjusted by cargo
transfers seen in the journal.

Examples:
  architect-tracker carrier show
  architect-tracker carrier import fleetcarrier.json`,
	}

	cmd.AddCommand(newCarrierShowCommand())
	cmd.AddCommand(newCarrierImportCommand())

	return cmd
}

func newCarrierShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the carrier cargo ledger",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Mediator.Send(app.Context(ctx), &queries.GetCarrierQuery{})
			if err != nil {
				return err
			}
			ledger := resp.(*queries.GetCarrierResponse)

			return render(os.Stdout, outputFormat, ledger, func(w *tabwriter.Writer) {
				name := ledger.CarrierName
				if name == "" {
					name = "(no carrier data yet)"
				}
				fmt.Fprintf(w, "Carrier:\t%s\t%s\n", name, ledger.Callsign)
				fmt.Fprintln(w, "COMMODITY\tQUANTITY")
				for _, c := range ledger.Commodities {
					fmt.Fprintf(w, "%s\t%d\n", c.Commodity, c.Quantity)
				}
				fmt.Fprintf(w, "Total:\t%d\n", ledger.TotalUnits)
			})
		},
	}
}

func newCarrierImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <capi.json>",
		Short: "Replace the ledger with saved companion API carrier data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open carrier data: %w", err)
			}
			defer f.Close()

			dec := json.NewDecoder(f)
			dec.UseNumber()
			var payload map[string]interface{}
			if err := dec.Decode(&payload); err != nil {
				return fmt.Errorf("failed to decode carrier data: %w", err)
			}

			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{withEvents: true})
			if err != nil {
				return err
			}
			defer app.Close()

			if outcome := app.Router.FleetCarrierData(app.Context(ctx), payload); outcome == eventlog.OutcomeFailed {
				return fmt.Errorf("carrier data in %s could not be applied", args[0])
			}
			fmt.Printf("Carrier ledger updated from %s\n", args[0])
			return nil
		},
	}
}
