package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	appConstruction "github.com/andrescamacho/architect-tracker/internal/application/construction"
	"github.com/andrescamacho/architect-tracker/internal/application/construction/commands"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
	"github.com/andrescamacho/architect-tracker/test/helpers"
)

func newStore(t *testing.T) *appConstruction.Store {
	t.Helper()
	repo := persistence.NewJSONFacilityRepository(filepath.Join(t.TempDir(), persistence.FacilityFileName))
	return appConstruction.NewStore(repo, &helpers.RecordingNotifier{}, nil)
}

func gold(required, provided int) commands.MaterialInput {
	return commands.MaterialInput{Symbol: "$gold_name;", DisplayName: "Gold", RequiredAmount: required, ProvidedAmount: provided}
}

func TestIngestConstructionSnapshotHandler_RejectsWrongRequestType(t *testing.T) {
	handler := commands.NewIngestConstructionSnapshotHandler(newStore(t))

	_, err := handler.Handle(context.Background(), &commands.RemoveFacilityCommand{FacilityID: "Sol:A"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid request type")
}

func TestIngestConstructionSnapshotHandler_CallerSkipsHoldTrackedFacility(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newStore(t)
	handler := commands.NewIngestConstructionSnapshotHandler(store)
	_, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", System: "Sol",
		Materials: []commands.MaterialInput{gold(500, 100)},
	})
	require.NoError(t, err)

	// Act
	resp, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", System: "Sol", MalformedEntries: 1,
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.IngestConstructionSnapshotResponse)
	assert.True(t, result.Held)
	assert.False(t, result.Pruned)
	_, tracked := store.Get(ctx, "Sol:Alpha Station")
	assert.True(t, tracked)
}

func TestIngestConstructionSnapshotHandler_InvalidOutstandingLineHoldsFacility(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newStore(t)
	handler := commands.NewIngestConstructionSnapshotHandler(store)
	_, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", System: "Sol",
		Materials: []commands.MaterialInput{gold(500, 100)},
	})
	require.NoError(t, err)

	// Act: the outstanding line is invalid, the remaining one is provided
	resp, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", System: "Sol",
		Materials: []commands.MaterialInput{
			{Symbol: "$steel_name;", DisplayName: "Steel", RequiredAmount: 10, ProvidedAmount: 10},
			gold(-1, 100),
		},
	})

	// Assert
	require.NoError(t, err)
	result := resp.(*commands.IngestConstructionSnapshotResponse)
	assert.True(t, result.Held)
	assert.Equal(t, []int{1}, result.SkippedEntries)
	facility, tracked := store.Get(ctx, "Sol:Alpha Station")
	require.True(t, tracked)
	_, hasGold := facility.Materials().Get("$gold_name;")
	assert.True(t, hasGold)
}

func TestIngestConstructionSnapshotHandler_CompleteSnapshotPrunes(t *testing.T) {
	ctx := context.Background()
	handler := commands.NewIngestConstructionSnapshotHandler(newStore(t))
	_, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", Materials: []commands.MaterialInput{gold(500, 100)},
	})
	require.NoError(t, err)

	resp, err := handler.Handle(ctx, &commands.IngestConstructionSnapshotCommand{
		FacilityID: "Sol:Alpha Station", Materials: []commands.MaterialInput{gold(500, 500)},
	})

	require.NoError(t, err)
	result := resp.(*commands.IngestConstructionSnapshotResponse)
	assert.True(t, result.Pruned)
	assert.False(t, result.Held)
}

func TestRemoveFacilityHandler_StrictAndLenient(t *testing.T) {
	// Arrange
	ctx := context.Background()
	store := newStore(t)
	set := construction.NewMaterialSet()
	m, err := construction.NewMaterialRequirement("$gold_name;", "Gold", 10, 0)
	require.NoError(t, err)
	set.Put(m)
	store.IngestSnapshot(ctx, "Sol:Alpha Station", "Sol", set)
	handler := commands.NewRemoveFacilityHandler(store)

	// Act
	removed, removeErr := handler.Handle(ctx, &commands.RemoveFacilityCommand{FacilityID: "Sol;Alpha Station", Strict: true})
	_, strictErr := handler.Handle(ctx, &commands.RemoveFacilityCommand{FacilityID: "Sol:Alpha Station", Strict: true})
	lenient, lenientErr := handler.Handle(ctx, &commands.RemoveFacilityCommand{FacilityID: "Sol:Alpha Station"})

	// Assert
	require.NoError(t, removeErr)
	assert.True(t, removed.(*commands.RemoveFacilityResponse).Removed)
	var notFound *shared.FacilityNotFoundError
	assert.True(t, errors.As(strictErr, &notFound))
	require.NoError(t, lenientErr)
	assert.False(t, lenient.(*commands.RemoveFacilityResponse).Removed)
}

func TestRemoveFacilityHandler_RejectsBlankFacility(t *testing.T) {
	handler := commands.NewRemoveFacilityHandler(newStore(t))

	_, err := handler.Handle(context.Background(), &commands.RemoveFacilityCommand{FacilityID: " "})

	assert.Error(t, err)
}
