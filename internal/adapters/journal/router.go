package journal

import (
	"context"
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	carrierCommands "github.com/andrescamacho/architect-tracker/internal/application/carrier/commands"
	constructionCommands "github.com/andrescamacho/architect-tracker/internal/application/construction/commands"
	constructionQueries "github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
	eventlogCommands "github.com/andrescamacho/architect-tracker/internal/application/eventlog/commands"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

// RouterDependencies are the collaborators a Router dispatches into
type RouterDependencies struct {
	Mediator mediator.Mediator
	Notifier construction.RefreshNotifier
	Logger   logging.Logger
	// RecordEvents appends every routed notification to the event log
	RecordEvents bool
}

// Router turns game notifications into tracker commands. It is built once
// when the tracker attaches to its host and handed to every callback.
//
// Nothing escapes a Router method: failures are logged, counted and
// reported through the returned outcome.
type Router struct {
	mediator     mediator.Mediator
	notifier     construction.RefreshNotifier
	logger       logging.Logger
	recordEvents bool
}

// NewRouter creates a Router
func NewRouter(deps RouterDependencies) *Router {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = construction.NoopNotifier{}
	}
	return &Router{
		mediator:     deps.Mediator,
		notifier:     notifier,
		logger:       logging.OrNoOp(deps.Logger),
		recordEvents: deps.RecordEvents,
	}
}

// Notification carries the host context of one journal event
type Notification struct {
	Commander string
	IsBeta    bool
	System    string
	Station   string
}

// JournalEntry routes one journal event. state is the host's view of the
// game; it fills in system and station when the host did not pass them.
func (r *Router) JournalEntry(
	ctx context.Context,
	commander string,
	isBeta bool,
	system, station string,
	entry map[string]interface{},
	state map[string]interface{},
) (outcome eventlog.Outcome) {
	defer r.recoverInto(&outcome, "journal entry")

	n := Notification{Commander: commander, IsBeta: isBeta, System: system, Station: station}
	if n.System == "" {
		n.System = stringField(state, "SystemName")
	}
	if n.Station == "" {
		n.Station = stringField(state, "StationName")
	}

	kind := stringField(entry, "event")
	ctx = logging.WithLogger(ctx, r.logger)

	var detail string
	switch {
	case kind == EventConstructionDepot:
		outcome, detail = r.handleConstructionDepot(ctx, n, entry)
	case kind == EventDocked:
		outcome, detail = r.handleDocked(ctx, n)
	case kind == EventCargoTransfer:
		outcome, detail = r.handleCargoTransfer(ctx, entry)
	case IsRefreshEvent(kind):
		r.notifier.Refresh(ctx)
		outcome = eventlog.OutcomeRefreshed
	default:
		metrics.RecordEvent("other", string(eventlog.OutcomeIgnored))
		return eventlog.OutcomeIgnored
	}

	r.finish(ctx, kind, n, outcome, detail, entry)
	return outcome
}

// FleetCarrierData routes carrier data received from the companion API.
// The payload may be the bare response or wrapped in a "data" object.
func (r *Router) FleetCarrierData(ctx context.Context, payload map[string]interface{}) (outcome eventlog.Outcome) {
	defer r.recoverInto(&outcome, "carrier data")
	ctx = logging.WithLogger(ctx, r.logger)

	if inner, ok := mapField(payload, "data"); ok {
		if _, hasCargo := payload["cargo"]; !hasCargo {
			payload = inner
		}
	}

	outcome, detail := r.handleCarrierData(ctx, payload)
	r.finish(ctx, KindFleetCarrierData, Notification{}, outcome, detail, payload)
	return outcome
}

// recoverInto keeps a handler panic inside the router
func (r *Router) recoverInto(outcome *eventlog.Outcome, source string) {
	if rec := recover(); rec != nil {
		r.logger.Log(logging.LevelError, "Recovered from panic while routing "+source, map[string]interface{}{
			"panic": fmt.Sprint(rec),
		})
		metrics.RecordEvent("panic", string(eventlog.OutcomeFailed))
		*outcome = eventlog.OutcomeFailed
	}
}

func (r *Router) handleConstructionDepot(ctx context.Context, n Notification, entry map[string]interface{}) (eventlog.Outcome, string) {
	if n.Station == "" {
		r.logger.Log(logging.LevelWarn, "Construction depot event without a station, ignoring", nil)
		return eventlog.OutcomeFailed, "no station"
	}

	resources, _, ok := listField(entry, "ResourcesRequired")
	if !ok {
		r.logger.Log(logging.LevelWarn, "ResourcesRequired is not a list, ignoring depot event", map[string]interface{}{
			"station": n.Station,
		})
		return eventlog.OutcomeFailed, "ResourcesRequired is not a list"
	}

	materials, skipped := parseResources(resources)
	for _, idx := range skipped {
		r.logger.Log(logging.LevelWarn, "Skipping malformed construction resource", map[string]interface{}{
			"station": n.Station,
			"index":   idx,
		})
	}
	if len(skipped) > 0 {
		metrics.RecordSkippedEntries("construction_resource", len(skipped))
	}

	resp, err := r.mediator.Send(ctx, &constructionCommands.IngestConstructionSnapshotCommand{
		FacilityID:       n.Station,
		System:           n.System,
		Materials:        materials,
		MalformedEntries: len(skipped),
	})
	if err != nil {
		r.logger.Log(logging.LevelError, "Failed to ingest construction snapshot", map[string]interface{}{
			"station": n.Station,
			"error":   err.Error(),
		})
		return eventlog.OutcomeFailed, err.Error()
	}

	result := resp.(*constructionCommands.IngestConstructionSnapshotResponse)
	switch {
	case result.Held:
		return eventlog.OutcomeFailed, fmt.Sprintf("%s left unchanged, %d malformed resources", result.FacilityID, len(skipped))
	case result.Pruned:
		return eventlog.OutcomeApplied, fmt.Sprintf("%s complete, pruned", result.FacilityID)
	case result.Stored:
		return eventlog.OutcomeApplied, fmt.Sprintf("%s stored with %d materials", result.FacilityID, result.MaterialCount)
	default:
		return eventlog.OutcomeApplied, fmt.Sprintf("%s complete, not tracked", result.FacilityID)
	}
}

func (r *Router) handleDocked(ctx context.Context, n Notification) (eventlog.Outcome, string) {
	r.notifier.Refresh(ctx)
	if n.Station == "" {
		return eventlog.OutcomeRefreshed, ""
	}

	resp, err := r.mediator.Send(ctx, &constructionQueries.FindFacilityByStationQuery{StationName: n.Station})
	if err != nil {
		r.logger.Log(logging.LevelError, "Failed to look up docked station", map[string]interface{}{
			"station": n.Station,
			"error":   err.Error(),
		})
		return eventlog.OutcomeRefreshed, ""
	}

	found := resp.(*constructionQueries.FindFacilityByStationResponse)
	if !found.Found {
		return eventlog.OutcomeRefreshed, ""
	}

	r.logger.Log(logging.LevelInfo, "Docked at tracked construction site", map[string]interface{}{
		"station":  n.Station,
		"facility": found.FacilityID,
	})
	r.notifier.Select(ctx, construction.FacilityID(found.FacilityID))
	return eventlog.OutcomeRefreshed, "selected " + found.FacilityID
}

func (r *Router) handleCargoTransfer(ctx context.Context, entry map[string]interface{}) (eventlog.Outcome, string) {
	items, _, ok := listField(entry, "Transfers")
	if !ok {
		r.logger.Log(logging.LevelWarn, "Transfers is not a list, ignoring cargo transfer", nil)
		return eventlog.OutcomeFailed, "Transfers is not a list"
	}

	resp, err := r.mediator.Send(ctx, &carrierCommands.ApplyCargoTransfersCommand{
		Transfers: parseTransfers(items),
	})
	if err != nil {
		r.logger.Log(logging.LevelError, "Failed to apply cargo transfers", map[string]interface{}{
			"error": err.Error(),
		})
		return eventlog.OutcomeFailed, err.Error()
	}
	r.notifier.Refresh(ctx)

	result := resp.(*carrierCommands.ApplyCargoTransfersResponse)
	return eventlog.OutcomeApplied, fmt.Sprintf("%d applied, %d skipped", result.Applied, len(result.Skipped))
}

func (r *Router) handleCarrierData(ctx context.Context, payload map[string]interface{}) (eventlog.Outcome, string) {
	cargo, _, ok := listField(payload, "cargo")
	if !ok {
		r.logger.Log(logging.LevelWarn, "Carrier cargo is not a list, ignoring carrier data", nil)
		return eventlog.OutcomeFailed, "cargo is not a list"
	}

	name, _ := mapField(payload, "name")
	resp, err := r.mediator.Send(ctx, &carrierCommands.ApplyCarrierSnapshotCommand{
		Items:         parseCarrierCargo(cargo),
		VanityNameHex: stringField(name, "vanityName"),
		Callsign:      stringField(name, "callsign"),
	})
	if err != nil {
		r.logger.Log(logging.LevelError, "Failed to apply carrier snapshot", map[string]interface{}{
			"error": err.Error(),
		})
		return eventlog.OutcomeFailed, err.Error()
	}
	r.notifier.Refresh(ctx)

	result := resp.(*carrierCommands.ApplyCarrierSnapshotResponse)
	return eventlog.OutcomeApplied, fmt.Sprintf("%s: %d commodities, %d units", result.CarrierName, result.Commodities, result.TotalUnits)
}

func (r *Router) finish(ctx context.Context, kind string, n Notification, outcome eventlog.Outcome, detail string, payload map[string]interface{}) {
	metrics.RecordEvent(kind, string(outcome))
	r.logger.Log(logging.LevelDebug, "Event routed", map[string]interface{}{
		"event":   kind,
		"outcome": string(outcome),
		"beta":    n.IsBeta,
	})

	if !r.recordEvents {
		return
	}
	_, err := r.mediator.Send(ctx, &eventlogCommands.RecordEventCommand{
		Kind:      kind,
		Commander: n.Commander,
		System:    n.System,
		Station:   n.Station,
		Outcome:   outcome,
		Detail:    detail,
		Payload:   payload,
	})
	if err != nil {
		r.logger.Log(logging.LevelWarn, "Failed to record event", map[string]interface{}{
			"event": kind,
			"error": err.Error(),
		})
	}
}

// parseResources converts ResourcesRequired into command input. Entries that
// are not objects or lack a name or amounts are skipped by index.
func parseResources(resources []interface{}) ([]constructionCommands.MaterialInput, []int) {
	materials := make([]constructionCommands.MaterialInput, 0, len(resources))
	var skipped []int
	for i, raw := range resources {
		res, ok := raw.(map[string]interface{})
		if !ok {
			skipped = append(skipped, i)
			continue
		}
		symbol := stringField(res, "Name")
		required, okRequired := intField(res, "RequiredAmount")
		provided, okProvided := intField(res, "ProvidedAmount")
		if symbol == "" || !okRequired || !okProvided {
			skipped = append(skipped, i)
			continue
		}
		display := stringField(res, "Name_Localised")
		if display == "" {
			display = symbol
		}
		materials = append(materials, constructionCommands.MaterialInput{
			Symbol:         symbol,
			DisplayName:    display,
			RequiredAmount: required,
			ProvidedAmount: provided,
		})
	}
	return materials, skipped
}

// parseTransfers keeps every entry in position so the ledger can report
// skipped indexes; unusable entries become zero-count transfers.
func parseTransfers(items []interface{}) []carrier.Transfer {
	transfers := make([]carrier.Transfer, 0, len(items))
	for _, raw := range items {
		t, ok := raw.(map[string]interface{})
		if !ok {
			transfers = append(transfers, carrier.Transfer{})
			continue
		}
		count, _ := intField(t, "Count")
		transfers = append(transfers, carrier.Transfer{
			CommodityName: stringField(t, "Type"),
			Count:         count,
			Direction:     stringField(t, "Direction"),
		})
	}
	return transfers
}

func parseCarrierCargo(items []interface{}) []carrier.CargoItem {
	cargo := make([]carrier.CargoItem, 0, len(items))
	for _, raw := range items {
		c, ok := raw.(map[string]interface{})
		if !ok {
			cargo = append(cargo, carrier.CargoItem{})
			continue
		}
		qty, _ := intField(c, "qty")
		cargo = append(cargo, carrier.CargoItem{
			Name:     stringField(c, "commodity"),
			Quantity: qty,
		})
	}
	return cargo
}
