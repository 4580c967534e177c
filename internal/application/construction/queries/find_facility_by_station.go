package queries

import (
	"context"
	"fmt"

	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
)

// FindFacilityByStationQuery finds the tracked facility whose identity
// mentions the station the player docked at
type FindFacilityByStationQuery struct {
	StationName string
}

// FindFacilityByStationResponse is empty-handed when Found is false
type FindFacilityByStationResponse struct {
	FacilityID string
	Found      bool
}

// FindFacilityByStationHandler handles the FindFacilityByStation query
type FindFacilityByStationHandler struct {
	store *appConstruction.Store
}

// NewFindFacilityByStationHandler creates a new FindFacilityByStationHandler
func NewFindFacilityByStationHandler(store *appConstruction.Store) *FindFacilityByStationHandler {
	return &FindFacilityByStationHandler{store: store}
}

// Handle executes the FindFacilityByStation query.
// The first matching identity in sorted order wins.
func (h *FindFacilityByStationHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*FindFacilityByStationQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *FindFacilityByStationQuery")
	}

	for _, id := range h.store.IDs(ctx) {
		if id.MatchesStation(query.StationName) {
			return &FindFacilityByStationResponse{FacilityID: id.String(), Found: true}, nil
		}
	}
	return &FindFacilityByStationResponse{}, nil
}
