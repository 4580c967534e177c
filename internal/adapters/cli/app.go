package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/architect-tracker/internal/adapters/gamefiles"
	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	adapterLogging "github.com/andrescamacho/architect-tracker/internal/adapters/logging"
	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/application/setup"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/config"
	"github.com/andrescamacho/architect-tracker/internal/infrastructure/database"
)

// App is the wired tracker for one CLI invocation
type App struct {
	Config   *config.Config
	Settings *config.SettingsHandler
	Display  config.DisplayConfig
	Logger   logging.Logger
	Mediator mediator.Mediator
	Store    *appConstruction.Store
	Tracker  *appCarrier.Tracker
	Router   *journal.Router

	db        *gorm.DB
	logCloser func() error
}

// appOptions tune what bootstrap wires
type appOptions struct {
	notifier   func(app *App) construction.RefreshNotifier
	withEvents bool
	withMetric bool
}

// bootstrap loads configuration and assembles the tracker
func bootstrap(ctx context.Context, opts appOptions) (*App, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}

	writer, err := adapterLogging.NewWriterLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	app := &App{Config: cfg, Logger: writer, logCloser: writer.Close}

	settings, err := config.NewSettingsHandler(cfg.Paths.SettingsPath())
	if err != nil {
		return nil, err
	}
	app.Settings = settings
	saved, err := settings.Load()
	if err != nil {
		writer.Log(logging.LevelWarn, "Ignoring unreadable settings", map[string]interface{}{
			"path":  settings.GetSettingsPath(),
			"error": err.Error(),
		})
	}
	app.Display = saved.Apply(cfg.Display)

	if opts.withMetric && cfg.Metrics.Enabled {
		metrics.InitRegistry()
		collector := metrics.NewTrackerMetricsCollector()
		if err := collector.Register(); err != nil {
			return nil, fmt.Errorf("failed to register tracker metrics: %w", err)
		}
		metrics.SetGlobalTrackerCollector(collector)
	}

	store := appConstruction.NewStore(
		persistence.NewJSONFacilityRepository(cfg.Paths.FacilityPath()),
		nil,
		writer,
	)
	tracker := appCarrier.NewTracker(ctx, persistence.NewJSONCarrierRepository(cfg.Paths.CarrierPath()), writer)
	app.Store, app.Tracker = store, tracker

	var eventRepo *persistence.GormEventLogRepository
	if opts.withEvents && !cfg.Database.Disabled {
		db, err := database.Open(&cfg.Database)
		if err != nil {
			writer.Log(logging.LevelWarn, "Event log unavailable", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			app.db = db
			eventRepo = persistence.NewGormEventLogRepository(db, nil)
		}
	}

	med := mediator.NewMediator()
	if metrics.IsEnabled() {
		requestMetrics := metrics.NewRequestMetricsCollector()
		if err := requestMetrics.Register(); err != nil {
			return nil, fmt.Errorf("failed to register request metrics: %w", err)
		}
		med.Use(metrics.PrometheusMiddleware(requestMetrics))
	}

	registry := setup.NewHandlerRegistry(
		store,
		tracker,
		gamefiles.NewMarketReader(cfg.Paths.MarketPath()),
		gamefiles.NewCargoReader(cfg.Paths.CargoPath()),
		nilIfAbsent(eventRepo),
		nil,
	)
	if err := registry.RegisterAll(med); err != nil {
		return nil, fmt.Errorf("failed to register handlers: %w", err)
	}
	app.Mediator = med

	if opts.notifier != nil {
		store.SetNotifier(opts.notifier(app))
	}

	app.Router = journal.NewRouter(journal.RouterDependencies{
		Mediator:     med,
		Notifier:     store.Notifier(),
		Logger:       writer,
		RecordEvents: eventRepo != nil,
	})
	return app, nil
}

// Close releases the database and log file
func (a *App) Close() {
	if a.db != nil {
		_ = database.Close(a.db)
	}
	if a.logCloser != nil {
		_ = a.logCloser()
	}
}

// Context attaches the app logger
func (a *App) Context(ctx context.Context) context.Context {
	return logging.WithLogger(ctx, a.Logger)
}

// nilIfAbsent keeps a typed nil repository from becoming a non-nil interface
func nilIfAbsent(repo *persistence.GormEventLogRepository) eventlog.Repository {
	if repo == nil {
		return nil
	}
	return repo
}
