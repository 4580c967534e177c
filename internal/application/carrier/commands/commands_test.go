package commands_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appCarrier "github.com/andrescamacho/architect-tracker/internal/application/carrier"
	"github.com/andrescamacho/architect-tracker/internal/application/carrier/commands"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

func newTracker(t *testing.T) *appCarrier.Tracker {
	t.Helper()
	repo := persistence.NewJSONCarrierRepository(filepath.Join(t.TempDir(), persistence.CarrierFileName))
	return appCarrier.NewTracker(context.Background(), repo, nil)
}

func TestApplyCarrierSnapshotHandler_ReplacesLedger(t *testing.T) {
	// Arrange
	tracker := newTracker(t)
	handler := commands.NewApplyCarrierSnapshotHandler(tracker)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ApplyCarrierSnapshotCommand{
		Callsign: "X9Z-12T",
		Items: []carrier.CargoItem{
			{Name: "Steel", Quantity: 200},
			{Name: "", Quantity: 5},
			{Name: "steel", Quantity: 64},
		},
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.ApplyCarrierSnapshotResponse)
	assert.Equal(t, "X9Z-12T", result.Callsign)
	assert.Equal(t, []int{1}, result.SkippedItems)
	assert.Equal(t, 264, result.TotalUnits)
	assert.True(t, result.Persisted)
	assert.Equal(t, 264, tracker.Snapshot().Quantity("steel"))
}

func TestApplyCargoTransfersHandler_AppliesAndSkips(t *testing.T) {
	// Arrange
	tracker := newTracker(t)
	handler := commands.NewApplyCargoTransfersHandler(tracker)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.ApplyCargoTransfersCommand{
		Transfers: []carrier.Transfer{
			{CommodityName: "$steel_name;", Count: 100, Direction: "tocarrier"},
			{CommodityName: "steel", Count: 30, Direction: "toship"},
			{CommodityName: "steel", Count: 30, Direction: "sideways"},
		},
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.ApplyCargoTransfersResponse)
	assert.Equal(t, 2, result.Applied)
	assert.Equal(t, []int{2}, result.Skipped)
	assert.Equal(t, 70, tracker.Snapshot().Quantity("steel"))
}

func TestCarrierCommandHandlers_RejectWrongRequestType(t *testing.T) {
	tracker := newTracker(t)
	ctx := context.Background()

	_, snapshotErr := commands.NewApplyCarrierSnapshotHandler(tracker).Handle(ctx, &commands.ApplyCargoTransfersCommand{})
	_, transferErr := commands.NewApplyCargoTransfersHandler(tracker).Handle(ctx, &commands.ApplyCarrierSnapshotCommand{})

	assert.ErrorContains(t, snapshotErr, "invalid request type")
	assert.ErrorContains(t, transferErr, "invalid request type")
}
