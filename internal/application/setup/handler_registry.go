package setup

import (
	"reflect"

	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	carrierCommands "github.com/andrescamacho/architect-tracker/internal/application/carrier/commands"
	carrierQueries "github.com/andrescamacho/architect-tracker/internal/application/carrier/queries"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	constructionCommands "github.com/andrescamacho/architect-tracker/internal/application/construction/commands"
	constructionQueries "github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
	eventlogCommands "github.com/andrescamacho/architect-tracker/internal/application/eventlog/commands"
	eventlogQueries "github.com/andrescamacho/architect-tracker/internal/application/eventlog/queries"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/domain/market"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	store        *appConstruction.Store
	tracker      *appCarrier.Tracker
	marketReader market.SnapshotReader
	cargoReader  market.CargoReader
	eventRepo    eventlog.Repository
	clock        shared.Clock
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// eventRepo may be nil when the event log is disabled.
func NewHandlerRegistry(
	store *appConstruction.Store,
	tracker *appCarrier.Tracker,
	marketReader market.SnapshotReader,
	cargoReader market.CargoReader,
	eventRepo eventlog.Repository,
	clock shared.Clock,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		store:        store,
		tracker:      tracker,
		marketReader: marketReader,
		cargoReader:  cargoReader,
		eventRepo:    eventRepo,
		clock:        clock,
	}
}

// RegisterAll registers every handler group
func (r *HandlerRegistry) RegisterAll(m mediator.Mediator) error {
	if err := r.RegisterConstructionHandlers(m); err != nil {
		return err
	}
	if err := r.RegisterCarrierHandlers(m); err != nil {
		return err
	}
	return r.RegisterEventLogHandlers(m)
}

// RegisterConstructionHandlers registers the facility store handlers
//
// This method registers:
//   - IngestConstructionSnapshotCommand → IngestConstructionSnapshotHandler
//   - RemoveFacilityCommand → RemoveFacilityHandler
//   - GetFacilityViewQuery → GetFacilityViewHandler
//   - ListFacilitiesQuery → ListFacilitiesHandler
//   - FindFacilityByStationQuery → FindFacilityByStationHandler
func (r *HandlerRegistry) RegisterConstructionHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&constructionCommands.IngestConstructionSnapshotCommand{}),
		constructionCommands.NewIngestConstructionSnapshotHandler(r.store),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&constructionCommands.RemoveFacilityCommand{}),
		constructionCommands.NewRemoveFacilityHandler(r.store),
	); err != nil {
		return err
	}

	viewHandler := constructionQueries.NewGetFacilityViewHandler(
		r.store,
		r.marketReader,
		r.cargoReader,
		r.tracker,
		r.tracker.Snapshot,
	)
	if err := m.Register(reflect.TypeOf(&constructionQueries.GetFacilityViewQuery{}), viewHandler); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&constructionQueries.ListFacilitiesQuery{}),
		constructionQueries.NewListFacilitiesHandler(r.store),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&constructionQueries.FindFacilityByStationQuery{}),
		constructionQueries.NewFindFacilityByStationHandler(r.store),
	)
}

// RegisterCarrierHandlers registers the carrier ledger handlers
func (r *HandlerRegistry) RegisterCarrierHandlers(m mediator.Mediator) error {
	if err := m.Register(
		reflect.TypeOf(&carrierCommands.ApplyCarrierSnapshotCommand{}),
		carrierCommands.NewApplyCarrierSnapshotHandler(r.tracker),
	); err != nil {
		return err
	}

	if err := m.Register(
		reflect.TypeOf(&carrierCommands.ApplyCargoTransfersCommand{}),
		carrierCommands.NewApplyCargoTransfersHandler(r.tracker),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&carrierQueries.GetCarrierQuery{}),
		carrierQueries.NewGetCarrierHandler(r.tracker),
	)
}

// RegisterEventLogHandlers registers the event log handlers. Nothing is
// registered without an event repository; senders treat the missing
// handler as "event log disabled".
func (r *HandlerRegistry) RegisterEventLogHandlers(m mediator.Mediator) error {
	if r.eventRepo == nil {
		return nil
	}

	if err := m.Register(
		reflect.TypeOf(&eventlogCommands.RecordEventCommand{}),
		eventlogCommands.NewRecordEventHandler(r.eventRepo, r.clock),
	); err != nil {
		return err
	}

	return m.Register(
		reflect.TypeOf(&eventlogQueries.ListEventsQuery{}),
		eventlogQueries.NewListEventsHandler(r.eventRepo),
	)
}
