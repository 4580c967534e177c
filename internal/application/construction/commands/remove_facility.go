package commands

import (
	"context"
	"fmt"

	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// RemoveFacilityCommand drops a facility from tracking (manual user action)
type RemoveFacilityCommand struct {
	FacilityID string
	// Strict makes an unknown facility an error instead of a no-op
	Strict bool
}

// RemoveFacilityResponse reports whether anything was removed
type RemoveFacilityResponse struct {
	FacilityID string
	Removed    bool
}

// RemoveFacilityHandler handles the RemoveFacility command
type RemoveFacilityHandler struct {
	store *appConstruction.Store
}

// NewRemoveFacilityHandler creates a new RemoveFacilityHandler
func NewRemoveFacilityHandler(store *appConstruction.Store) *RemoveFacilityHandler {
	return &RemoveFacilityHandler{store: store}
}

// Handle executes the RemoveFacility command
func (h *RemoveFacilityHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RemoveFacilityCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RemoveFacilityCommand")
	}

	facilityID, err := construction.NewFacilityID(cmd.FacilityID)
	if err != nil {
		return nil, fmt.Errorf("invalid facility: %w", err)
	}

	removed := h.store.RemoveFacility(ctx, facilityID)
	if !removed && cmd.Strict {
		return nil, shared.NewFacilityNotFoundError(facilityID.String())
	}

	return &RemoveFacilityResponse{FacilityID: facilityID.String(), Removed: removed}, nil
}
