package helpers

import (
	"context"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"github.com/andrescamacho/architect-tracker/internal/adapters/gamefiles"
	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/application/setup"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// Environment is a fully wired tracker over files in Dir
type Environment struct {
	Dir       string
	Store     *appConstruction.Store
	Tracker   *appCarrier.Tracker
	Mediator  mediator.Mediator
	Router    *journal.Router
	Notifier  *RecordingNotifier
	Logger    *logging.RecordingLogger
	EventRepo eventlog.Repository
}

// NewEnvironment wires store, tracker, handlers and router over dir.
// db may be nil to run without the event log.
func NewEnvironment(dir string, db *gorm.DB, clock shared.Clock) (*Environment, error) {
	env := &Environment{
		Dir:      dir,
		Notifier: &RecordingNotifier{},
		Logger:   &logging.RecordingLogger{},
	}

	env.Store = appConstruction.NewStore(
		persistence.NewJSONFacilityRepository(env.FacilityPath()),
		env.Notifier,
		env.Logger,
	)
	env.Tracker = appCarrier.NewTracker(
		context.Background(),
		persistence.NewJSONCarrierRepository(env.CarrierPath()),
		env.Logger,
	)
	if db != nil {
		env.EventRepo = persistence.NewGormEventLogRepository(db, clock)
	}

	env.Mediator = mediator.NewMediator()
	registry := setup.NewHandlerRegistry(
		env.Store,
		env.Tracker,
		gamefiles.NewMarketReader(env.MarketPath()),
		gamefiles.NewCargoReader(env.CargoPath()),
		env.EventRepo,
		clock,
	)
	if err := registry.RegisterAll(env.Mediator); err != nil {
		return nil, err
	}

	env.Router = journal.NewRouter(journal.RouterDependencies{
		Mediator:     env.Mediator,
		Notifier:     env.Notifier,
		Logger:       env.Logger,
		RecordEvents: env.EventRepo != nil,
	})
	return env, nil
}

func (e *Environment) FacilityPath() string {
	return filepath.Join(e.Dir, persistence.FacilityFileName)
}
func (e *Environment) CarrierPath() string { return filepath.Join(e.Dir, persistence.CarrierFileName) }
func (e *Environment) MarketPath() string  { return filepath.Join(e.Dir, "Market.json") }
func (e *Environment) CargoPath() string   { return filepath.Join(e.Dir, "Cargo.json") }

// WriteMarket writes a Market.json snapshot
func (e *Environment) WriteMarket(content string) error {
	return os.WriteFile(e.MarketPath(), []byte(content), 0o644)
}

// WriteCargo writes a Cargo.json snapshot
func (e *Environment) WriteCargo(content string) error {
	return os.WriteFile(e.CargoPath(), []byte(content), 0o644)
}
