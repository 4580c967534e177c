package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/application/construction/commands"
	"github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
)

// NewFacilitiesCommand creates the facilities command with subcommands
func NewFacilitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facilities",
		Short: "Manage tracked construction sites",
		Long: `List or remove tracked construction sites.

Sites are added automatically from construction depot events and removed
once every material is delivered. Use 'remove' for sites you abandoned.

Examples:
  architect-tracker facilities list
  architect-tracker facilities list --system Sol --sort-by-system
  architect-tracker facilities remove "Orbital Construction Site: Alpha"`,
	}

	cmd.AddCommand(newFacilitiesListCommand())
	cmd.AddCommand(newFacilitiesRemoveCommand())

	return cmd
}

func newFacilitiesListCommand() *cobra.Command {
	var (
		system       string
		sortBySystem bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked construction sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			query := &queries.ListFacilitiesQuery{
				System:       app.Display.SelectedSystem,
				SortBySystem: app.Display.SortBySystem,
			}
			if cmd.Flags().Changed("system") {
				query.System = system
			}
			if cmd.Flags().Changed("sort-by-system") {
				query.SortBySystem = sortBySystem
			}

			resp, err := app.Mediator.Send(app.Context(ctx), query)
			if err != nil {
				return err
			}
			list := resp.(*queries.ListFacilitiesResponse)

			return render(os.Stdout, outputFormat, list, func(w *tabwriter.Writer) {
				if len(list.Facilities) == 0 {
					fmt.Fprintln(w, "No construction sites tracked.")
					return
				}
				fmt.Fprintln(w, "FACILITY\tSYSTEM\tMATERIALS\tCOMPLETE\tID")
				for _, f := range list.Facilities {
					fmt.Fprintf(w, "%s\t%s\t%d\t%.1f%%\t%s\n",
						f.DisplayName, f.System, f.Materials, f.CompletionPercentage, f.FacilityID)
				}
				fmt.Fprintf(w, "\n%s in %s\n", plural(len(list.Facilities), "site"), plural(len(list.Systems), "system"))
			})
		},
	}

	cmd.Flags().StringVar(&system, "system", "", "Only list facilities in this system")
	cmd.Flags().BoolVar(&sortBySystem, "sort-by-system", false, "Order by system, then name")

	return cmd
}

func newFacilitiesRemoveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <facility>",
		Short: "Stop tracking a construction site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Mediator.Send(app.Context(ctx), &commands.RemoveFacilityCommand{
				FacilityID: args[0],
				Strict:     true,
			})
			if err != nil {
				return err
			}
			result := resp.(*commands.RemoveFacilityResponse)
			fmt.Printf("Removed %s\n", result.FacilityID)
			return nil
		},
	}
	return cmd
}
