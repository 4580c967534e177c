package queries_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

func seededStore(t *testing.T) *appConstruction.Store {
	t.Helper()
	ctx := context.Background()
	store := appConstruction.NewStore(
		persistence.NewJSONFacilityRepository(filepath.Join(t.TempDir(), persistence.FacilityFileName)), nil, nil)

	for _, site := range []struct {
		id, system string
		provided   int
	}{
		{"Sol:Zeta Hub", "Sol", 5},
		{"HIP 1:Abraham Works", "HIP 1", 0},
		{"Sol:Beta Yard", "Sol", 0},
	} {
		m, err := construction.NewMaterialRequirement("$steel_name;", "Steel", 10, site.provided)
		require.NoError(t, err)
		store.IngestSnapshot(ctx, construction.FacilityID(site.id), site.system, construction.NewMaterialSet(m))
	}
	return store
}

func TestListFacilitiesHandler_OrdersAndFilters(t *testing.T) {
	// Arrange
	handler := queries.NewListFacilitiesHandler(seededStore(t))
	ctx := context.Background()

	// Act
	byName, err := handler.Handle(ctx, &queries.ListFacilitiesQuery{})
	require.NoError(t, err)
	bySystem, err := handler.Handle(ctx, &queries.ListFacilitiesQuery{SortBySystem: true})
	require.NoError(t, err)
	solOnly, err := handler.Handle(ctx, &queries.ListFacilitiesQuery{System: "Sol"})
	require.NoError(t, err)

	// Assert
	names := func(resp interface{}) []string {
		var out []string
		for _, f := range resp.(*queries.ListFacilitiesResponse).Facilities {
			out = append(out, f.DisplayName)
		}
		return out
	}
	assert.Equal(t, []string{"Abraham Works", "Beta Yard", "Zeta Hub"}, names(byName))
	assert.Equal(t, []string{"Abraham Works", "Beta Yard", "Zeta Hub"}, names(bySystem))
	assert.Equal(t, []string{"Beta Yard", "Zeta Hub"}, names(solOnly))
	assert.Equal(t, []string{"HIP 1", "Sol"}, solOnly.(*queries.ListFacilitiesResponse).Systems)

	zeta := solOnly.(*queries.ListFacilitiesResponse).Facilities[1]
	assert.InDelta(t, 50.0, zeta.CompletionPercentage, 0.0001)
}

func TestFindFacilityByStationHandler(t *testing.T) {
	handler := queries.NewFindFacilityByStationHandler(seededStore(t))
	ctx := context.Background()

	found, err := handler.Handle(ctx, &queries.FindFacilityByStationQuery{StationName: "beta yard"})
	require.NoError(t, err)
	missing, err := handler.Handle(ctx, &queries.FindFacilityByStationQuery{StationName: "Nowhere"})
	require.NoError(t, err)

	assert.Equal(t, &queries.FindFacilityByStationResponse{FacilityID: "Sol:Beta Yard", Found: true}, found)
	assert.False(t, missing.(*queries.FindFacilityByStationResponse).Found)
}

func TestConstructionQueryHandlers_RejectWrongRequestType(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	_, listErr := queries.NewListFacilitiesHandler(store).Handle(ctx, &queries.FindFacilityByStationQuery{})
	_, findErr := queries.NewFindFacilityByStationHandler(store).Handle(ctx, &queries.ListFacilitiesQuery{})

	assert.ErrorContains(t, listErr, "invalid request type")
	assert.ErrorContains(t, findErr, "invalid request type")
}
