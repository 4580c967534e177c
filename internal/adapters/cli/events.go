package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/application/eventlog/queries"
)

// NewEventsCommand creates the events command
func NewEventsCommand() *cobra.Command {
	var (
		kind  string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Show recently routed game events",
		Long: `List the game events the tracker acted on, newest first.
JSON output includes the raw journal entry of each event.

Examples:
  architect-tracker events
  architect-tracker events --kind ColonisationConstructionDepot --limit 5
  architect-tracker events --kind CargoTransfer --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{withEvents: true})
			if err != nil {
				return err
			}
			defer app.Close()

			resp, err := app.Mediator.Send(app.Context(ctx), &queries.ListEventsQuery{Kind: kind, Limit: limit})
			if err != nil {
				return fmt.Errorf("event log unavailable: %w", err)
			}
			events := resp.(*queries.ListEventsResponse)

			return render(os.Stdout, outputFormat, events, func(w *tabwriter.Writer) {
				if len(events.Events) == 0 {
					fmt.Fprintln(w, "No events recorded.")
					return
				}
				fmt.Fprintln(w, "TIME\tEVENT\tOUTCOME\tSTATION\tDETAIL")
				for _, e := range events.Events {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						e.Timestamp.Local().Format(time.DateTime), e.Kind, e.Outcome, e.Station, e.Detail)
				}
			})
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only show events of this kind")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of events")

	return cmd
}
