package queries_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	"github.com/andrescamacho/architect-tracker/internal/application/carrier/queries"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

func TestGetCarrierHandler_ListsCommoditiesSorted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := persistence.NewJSONCarrierRepository(filepath.Join(t.TempDir(), persistence.CarrierFileName))
	tracker := appCarrier.NewTracker(ctx, repo, nil)
	tracker.ApplySnapshot(ctx, []carrier.CargoItem{
		{Name: "Titanium", Quantity: 40},
		{Name: "Aluminium", Quantity: 10},
	}, carrier.Metadata{Callsign: "X9Z-12T"})
	handler := queries.NewGetCarrierHandler(tracker)

	// Act
	resp, err := handler.Handle(ctx, &queries.GetCarrierQuery{})

	// Assert
	require.NoError(t, err)
	result := resp.(*queries.GetCarrierResponse)
	assert.Equal(t, "X9Z-12T", result.Callsign)
	assert.Equal(t, 50, result.TotalUnits)
	assert.Equal(t, []queries.CommodityStock{
		{Commodity: "aluminium", Quantity: 10},
		{Commodity: "titanium", Quantity: 40},
	}, result.Commodities)
}

func TestGetCarrierHandler_EmptyLedger(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewJSONCarrierRepository(filepath.Join(t.TempDir(), persistence.CarrierFileName))
	handler := queries.NewGetCarrierHandler(appCarrier.NewTracker(ctx, repo, nil))

	resp, err := handler.Handle(ctx, &queries.GetCarrierQuery{})

	require.NoError(t, err)
	assert.NotNil(t, resp.(*queries.GetCarrierResponse).Commodities)
	assert.Empty(t, resp.(*queries.GetCarrierResponse).Commodities)
}

type otherQuery struct{}

func TestGetCarrierHandler_RejectsWrongRequestType(t *testing.T) {
	ctx := context.Background()
	repo := persistence.NewJSONCarrierRepository(filepath.Join(t.TempDir(), persistence.CarrierFileName))
	handler := queries.NewGetCarrierHandler(appCarrier.NewTracker(ctx, repo, nil))

	_, err := handler.Handle(ctx, &otherQuery{})

	assert.ErrorContains(t, err, "invalid request type")
}
