package commands

import (
	"context"
	"fmt"

	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

// ApplyCarrierSnapshotCommand replaces the carrier ledger with a full cargo dump
type ApplyCarrierSnapshotCommand struct {
	Items         []carrier.CargoItem
	VanityNameHex string
	Callsign      string
}

// ApplyCarrierSnapshotResponse summarizes the new ledger
type ApplyCarrierSnapshotResponse struct {
	CarrierName  string
	Callsign     string
	Commodities  int
	TotalUnits   int
	SkippedItems []int
	Persisted    bool
}

// ApplyCarrierSnapshotHandler handles the ApplyCarrierSnapshot command
type ApplyCarrierSnapshotHandler struct {
	tracker *appCarrier.Tracker
}

// NewApplyCarrierSnapshotHandler creates a new ApplyCarrierSnapshotHandler
func NewApplyCarrierSnapshotHandler(tracker *appCarrier.Tracker) *ApplyCarrierSnapshotHandler {
	return &ApplyCarrierSnapshotHandler{tracker: tracker}
}

// Handle executes the ApplyCarrierSnapshot command
func (h *ApplyCarrierSnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ApplyCarrierSnapshotCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ApplyCarrierSnapshotCommand")
	}

	result, persisted := h.tracker.ApplySnapshot(ctx, cmd.Items, carrier.Metadata{
		VanityNameHex: cmd.VanityNameHex,
		Callsign:      cmd.Callsign,
	})
	ledger := h.tracker.Snapshot()

	return &ApplyCarrierSnapshotResponse{
		CarrierName:  ledger.CarrierName(),
		Callsign:     ledger.Callsign(),
		Commodities:  result.Commodities,
		TotalUnits:   ledger.TotalUnits(),
		SkippedItems: result.SkippedItems,
		Persisted:    persisted,
	}, nil
}
