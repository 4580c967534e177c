package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

// MaterialInput is one ResourcesRequired line of a depot snapshot
type MaterialInput struct {
	Symbol         string
	DisplayName    string
	RequiredAmount int
	ProvidedAmount int
}

// IngestConstructionSnapshotCommand replaces a facility's requirements with
// the state observed at a construction depot
type IngestConstructionSnapshotCommand struct {
	FacilityID string
	System     string
	Materials  []MaterialInput
	// MalformedEntries counts payload lines the caller dropped before
	// building Materials. Any drop makes the snapshot partial.
	MalformedEntries int
}

// IngestConstructionSnapshotResponse reports what the store did
type IngestConstructionSnapshotResponse struct {
	FacilityID     string
	Stored         bool
	Pruned         bool
	Persisted      bool
	Held           bool
	MaterialCount  int
	SkippedEntries []int
}

// IngestConstructionSnapshotHandler handles the IngestConstructionSnapshot command
type IngestConstructionSnapshotHandler struct {
	store *appConstruction.Store
}

// NewIngestConstructionSnapshotHandler creates a new IngestConstructionSnapshotHandler
func NewIngestConstructionSnapshotHandler(store *appConstruction.Store) *IngestConstructionSnapshotHandler {
	return &IngestConstructionSnapshotHandler{store: store}
}

// Handle executes the IngestConstructionSnapshot command
func (h *IngestConstructionSnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*IngestConstructionSnapshotCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *IngestConstructionSnapshotCommand")
	}

	facilityID, err := construction.NewFacilityID(cmd.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("invalid facility: %w", err)
	}

	logger := logging.LoggerFromContext(ctx)
	materials := construction.NewMaterialSet()
	var skipped []int
	for i, input := range cmd.Materials {
		requirement, err := construction.NewMaterialRequirement(input.Symbol, input.DisplayName, input.RequiredAmount, input.ProvidedAmount)
		if err != nil {
			skipped = append(skipped, i)
			logger.Log(logging.LevelWarn, "Skipping malformed construction material", map[string]interface{}{
				"facility": facilityID.String(),
				"index":    i,
				"error":    err.Error(),
			})
			continue
		}
		materials.Put(requirement)
	}
	metrics.RecordSkippedEntries("construction_material", len(skipped))

	var outcome appConstruction.IngestOutcome
	if cmd.MalformedEntries > 0 || len(skipped) > 0 {
		outcome = h.store.IngestPartialSnapshot(ctx, facilityID, cmd.System, materials)
	} else {
		outcome = h.store.IngestSnapshot(ctx, facilityID, cmd.System, materials)
	}

	return &IngestConstructionSnapshotResponse{
		FacilityID:     outcome.FacilityID.String(),
		Stored:         outcome.Stored,
		Pruned:         outcome.Pruned,
		Persisted:      outcome.Persisted,
		Held:           outcome.Held,
		MaterialCount:  materials.Len(),
		SkippedEntries: skipped,
	}, nil
}
