package commands

import (
	"context"
	"fmt"

	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

// ApplyCargoTransfersCommand adjusts the carrier ledger by transfer deltas
type ApplyCargoTransfersCommand struct {
	Transfers []carrier.Transfer
}

// ApplyCargoTransfersResponse reports which transfers were applied
type ApplyCargoTransfersResponse struct {
	Applied   int
	Skipped   []int
	Persisted bool
}

// ApplyCargoTransfersHandler handles the ApplyCargoTransfers command
type ApplyCargoTransfersHandler struct {
	tracker *appCarrier.Tracker
}

// NewApplyCargoTransfersHandler creates a new ApplyCargoTransfersHandler
func NewApplyCargoTransfersHandler(tracker *appCarrier.Tracker) *ApplyCargoTransfersHandler {
	return &ApplyCargoTransfersHandler{tracker: tracker}
}

// Handle executes the ApplyCargoTransfers command
func (h *ApplyCargoTransfersHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ApplyCargoTransfersCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ApplyCargoTransfersCommand")
	}

	result, persisted := h.tracker.ApplyTransfers(ctx, cmd.Transfers)

	return &ApplyCargoTransfersResponse{
		Applied:   len(result.Applied),
		Skipped:   result.Skipped,
		Persisted: persisted,
	}, nil
}
