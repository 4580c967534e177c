package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

// NewReplayCommand creates the replay command
func NewReplayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <journal>...",
		Short: "Feed journal files through the tracker",
		Long: `Replay one or more journal files in order, as if the events happened now.

Construction depot snapshots replace stored requirements, so replaying a
journal twice is harmless for facilities. Cargo transfers are deltas and
are applied again on every replay.

Example:
  architect-tracker replay Journal.2025-04-01T120000.01.log`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := bootstrap(ctx, appOptions{withEvents: true})
			if err != nil {
				return err
			}
			defer app.Close()

			feeder := journal.NewFeeder(app.Router, nil)
			total := journal.ReplayStats{Outcomes: make(map[eventlog.Outcome]int)}
			for _, path := range args {
				stats, err := replayFile(app.Context(ctx), feeder, path)
				if err != nil {
					return err
				}
				total.Lines += stats.Lines
				total.Malformed += stats.Malformed
				for outcome, n := range stats.Outcomes {
					total.Outcomes[outcome] += n
				}
			}

			return render(os.Stdout, outputFormat, total, func(w *tabwriter.Writer) {
				fmt.Fprintf(w, "Lines:\t%d\n", total.Lines)
				fmt.Fprintf(w, "Malformed:\t%d\n", total.Malformed)
				outcomes := make([]string, 0, len(total.Outcomes))
				for outcome := range total.Outcomes {
					outcomes = append(outcomes, string(outcome))
				}
				sort.Strings(outcomes)
				for _, outcome := range outcomes {
					fmt.Fprintf(w, "%s:\t%d\n", outcome, total.Outcomes[eventlog.Outcome(outcome)])
				}
			})
		},
	}
}

func replayFile(ctx context.Context, feeder *journal.Feeder, path string) (journal.ReplayStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return journal.ReplayStats{}, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()
	return feeder.Replay(ctx, f)
}
