package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/adapters/overlay"
	"github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/pidfile"
)

const pidFileName = "architect-tracker.pid"

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var gameDir string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the game journal and keep the tracker current",
		Long: `Follow the newest journal in the game directory and apply construction,
docking and cargo transfer events as they are written.

When the overlay is enabled, connected overlays receive a refresh after
every change and a select message when you dock at a tracked site.
Only one watcher may run per data directory.

Examples:
  architect-tracker watch
  architect-tracker watch --game-dir "/path/to/Saved Games/Frontier Developments/Elite Dangerous"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, gameDir)
		},
	}

	cmd.Flags().StringVar(&gameDir, "game-dir", "", "Journal directory (default: from configuration)")

	return cmd
}

func runWatch(ctx context.Context, gameDir string) error {
	var hub *overlay.Hub
	opts := appOptions{withEvents: true, withMetric: true}
	opts.notifier = func(app *App) construction.RefreshNotifier {
		if !app.Config.Overlay.Enabled {
			return nil
		}
		hub = overlay.NewHub(overlayPayload(app), app.Logger)
		return hub
	}

	app, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer app.Close()

	lock := pidfile.New(filepath.Join(app.Config.Paths.DataDir, pidFileName))
	if err := lock.Acquire(); err != nil {
		var running *pidfile.AlreadyRunningError
		if errors.As(err, &running) {
			return fmt.Errorf("%w; stop it before starting another watcher", err)
		}
		return err
	}
	defer func() { _ = lock.Release() }()

	if gameDir == "" {
		gameDir = app.Config.Paths.GameDir
	}

	ctx, cancel := context.WithCancel(app.Context(ctx))
	defer cancel()

	var runners []func(context.Context) error
	if hub != nil {
		server, err := overlay.NewServer(app.Config.Overlay, hub, app.Logger)
		if err != nil {
			return err
		}
		runners = append(runners, server.Run)
	}
	if metrics.IsEnabled() {
		server, err := metrics.NewServer(app.Config.Metrics.Host, app.Config.Metrics.Port, app.Config.Metrics.Path)
		if err != nil {
			return err
		}
		runners = append(runners, server.Run)
	}
	tailer := journal.NewTailer(journal.TailerConfig{
		Dir:               gameDir,
		PollInterval:      app.Config.Journal.PollInterval,
		MaxReadsPerSecond: app.Config.Journal.MaxReadsPerSecond,
	}, journal.NewFeeder(app.Router, nil), app.Logger)
	runners = append(runners, tailer.Run)

	app.Logger.Log(logging.LevelInfo, "Watching journal", map[string]interface{}{
		"game_dir": gameDir,
		"overlay":  hub != nil,
		"metrics":  metrics.IsEnabled(),
	})

	errCh := make(chan error, len(runners))
	for _, run := range runners {
		go func(run func(context.Context) error) {
			errCh <- run(ctx)
		}(run)
	}

	// The first runner to stop takes the others down with it
	var firstErr error
	for range runners {
		if err := <-errCh; err != nil && firstErr == nil && !errors.Is(err, context.Canceled) {
			firstErr = err
		}
		cancel()
	}

	app.Logger.Log(logging.LevelInfo, "Watcher stopped", nil)
	return firstErr
}

// overlayPayload renders every facility with the user's display settings
func overlayPayload(app *App) overlay.PayloadProvider {
	return func(ctx context.Context) (interface{}, error) {
		resp, err := app.Mediator.Send(ctx, &queries.GetFacilityViewQuery{
			System:        app.Display.SelectedSystem,
			HideProvided:  app.Display.HideProvided,
			CargoCapacity: app.Display.CargoCapacity,
		})
		if err != nil {
			return nil, err
		}
		return resp.(*queries.GetFacilityViewResponse).Views, nil
	}
}
