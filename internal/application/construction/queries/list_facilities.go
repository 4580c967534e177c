package queries

import (
	"context"
	"fmt"
	"sort"

	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/supply"
)

// ListFacilitiesQuery lists tracked facilities, optionally limited to one system
type ListFacilitiesQuery struct {
	System       string
	SortBySystem bool
}

// FacilitySummary is one entry of the facility selector
type FacilitySummary struct {
	FacilityID           string  `json:"facility_id" yaml:"facility_id"`
	DisplayName          string  `json:"display_name" yaml:"display_name"`
	System               string  `json:"system" yaml:"system"`
	Materials            int     `json:"materials" yaml:"materials"`
	CompletionPercentage float64 `json:"completion_percentage" yaml:"completion_percentage"`
}

// ListFacilitiesResponse carries the filtered facilities and every known system
type ListFacilitiesResponse struct {
	Facilities []FacilitySummary `json:"facilities" yaml:"facilities"`
	Systems    []string          `json:"systems" yaml:"systems"`
}

// ListFacilitiesHandler handles the ListFacilities query
type ListFacilitiesHandler struct {
	store *appConstruction.Store
}

// NewListFacilitiesHandler creates a new ListFacilitiesHandler
func NewListFacilitiesHandler(store *appConstruction.Store) *ListFacilitiesHandler {
	return &ListFacilitiesHandler{store: store}
}

// Handle executes the ListFacilities query
func (h *ListFacilitiesHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListFacilitiesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListFacilitiesQuery")
	}

	facilities := h.store.Load(ctx)
	systems := make(map[string]struct{})
	response := &ListFacilitiesResponse{
		Facilities: make([]FacilitySummary, 0, len(facilities)),
		Systems:    make([]string, 0),
	}

	for _, f := range facilities {
		if f.System() != "" {
			systems[f.System()] = struct{}{}
		}
		if query.System != "" && f.System() != query.System {
			continue
		}
		response.Facilities = append(response.Facilities, FacilitySummary{
			FacilityID:           f.ID().String(),
			DisplayName:          f.DisplayName(),
			System:               f.System(),
			Materials:            f.Materials().Len(),
			CompletionPercentage: supply.CompletionPercentage(f.Materials()),
		})
	}

	for system := range systems {
		response.Systems = append(response.Systems, system)
	}
	sort.Strings(response.Systems)

	sort.Slice(response.Facilities, func(i, j int) bool {
		a, b := response.Facilities[i], response.Facilities[j]
		if query.SortBySystem && a.System != b.System {
			return a.System < b.System
		}
		if a.DisplayName != b.DisplayName {
			return a.DisplayName < b.DisplayName
		}
		return a.FacilityID < b.FacilityID
	})

	return response, nil
}
