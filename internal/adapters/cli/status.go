package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
)

// NewStatusCommand creates the status command
func NewStatusCommand() *cobra.Command {
	var (
		system       string
		hideProvided bool
		showAll      bool
	)

	cmd := &cobra.Command{
		Use:   "status [facility]",
		Short: "Show what each construction site still needs",
		Long: `Show the supply view for one facility, or for every tracked facility.

For each material the view lists the outstanding need, whether the last
visited market sells it, and how much is on your carrier and in your hold.
Shortfall is what remains after carrier and ship cargo are delivered.

Without a facility argument, facilities in the selected system are shown
(see 'config set-system'); --all ignores the selection.

Examples:
  architect-tracker status
  architect-tracker status "Orbital Construction Site: Alpha" --hide-provided
  architect-tracker status --system Sol -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			query := &queries.GetFacilityViewQuery{
				System:        app.Display.SelectedSystem,
				HideProvided:  app.Display.HideProvided,
				CargoCapacity: app.Display.CargoCapacity,
			}
			if len(args) == 1 {
				query.FacilityID = args[0]
			}
			if cmd.Flags().Changed("system") {
				query.System = system
			}
			if showAll {
				query.System = ""
			}
			if cmd.Flags().Changed("hide-provided") {
				query.HideProvided = hideProvided
			}

			resp, err := app.Mediator.Send(app.Context(ctx), query)
			if err != nil {
				return err
			}
			views := resp.(*queries.GetFacilityViewResponse)

			return render(os.Stdout, outputFormat, views, func(w *tabwriter.Writer) {
				printFacilityViews(w, views.Views)
			})
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "Only show facilities in this system")
	cmd.Flags().BoolVar(&showAll, "all", false, "Show facilities in every system")
	cmd.Flags().BoolVar(&hideProvided, "hide-provided", false, "Hide materials that are fully provided")

	return cmd
}

func printFacilityViews(w *tabwriter.Writer, views []queries.FacilityView) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No construction sites tracked. Dock at a construction depot to start tracking.")
		return
	}

	for i, view := range views {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s\t(%s)\n", view.DisplayName, view.System)
		if view.MarketStation != "" {
			fmt.Fprintf(w, "Market:\t%s\n", view.MarketStation)
		}
		if view.CarrierName != "" {
			fmt.Fprintf(w, "Carrier:\t%s\n", view.CarrierName)
		}
		fmt.Fprintln(w, "MATERIAL\tREQUIRED\tPROVIDED\tNEEDED\tFOR SALE\tCARRIER\tSHIP\tSHORTFALL")
		for _, row := range view.Rows {
			fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%d\t%d\t%d\n",
				row.DisplayName,
				row.Required,
				row.Provided,
				row.Needed,
				checkmark(row.ForSale),
				row.CarrierQuantity,
				row.ShipQuantity,
				row.Shortfall,
			)
		}
		fmt.Fprintf(w, "Trips: %d\tCompletion: %.1f%%\tCurrent Cargo: %d/%d\n",
			view.Summary.RequiredTrips,
			view.Summary.CompletionPercentage,
			view.Summary.ShipCargoUnits,
			view.Summary.CargoCapacity,
		)
	}
}
