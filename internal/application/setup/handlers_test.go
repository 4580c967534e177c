package setup_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	carrierCmd "github.com/andrescamacho/architect-tracker/internal/application/carrier/commands"
	carrierQuery "github.com/andrescamacho/architect-tracker/internal/application/carrier/queries"
	constructionCmd "github.com/andrescamacho/architect-tracker/internal/application/construction/commands"
	constructionQuery "github.com/andrescamacho/architect-tracker/internal/application/construction/queries"
	eventCmd "github.com/andrescamacho/architect-tracker/internal/application/eventlog/commands"
	eventQuery "github.com/andrescamacho/architect-tracker/internal/application/eventlog/queries"
	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
	"github.com/andrescamacho/architect-tracker/test/helpers"
)

func newEnvironment(t *testing.T) (*helpers.Environment, *shared.MockClock) {
	t.Helper()
	clock := shared.NewMockClock(time.Date(3311, 4, 1, 12, 0, 0, 0, time.UTC))
	env, err := helpers.NewEnvironment(t.TempDir(), helpers.NewTestDB(t), clock)
	require.NoError(t, err)
	return env, clock
}

func ingest(t *testing.T, env *helpers.Environment, id, system string, materials ...constructionCmd.MaterialInput) *constructionCmd.IngestConstructionSnapshotResponse {
	t.Helper()
	resp, err := env.Mediator.Send(context.Background(), &constructionCmd.IngestConstructionSnapshotCommand{
		FacilityID: id,
		System:     system,
		Materials:  materials,
	})
	require.NoError(t, err)
	return resp.(*constructionCmd.IngestConstructionSnapshotResponse)
}

func material(symbol string, required, provided int) constructionCmd.MaterialInput {
	return constructionCmd.MaterialInput{Symbol: symbol, RequiredAmount: required, ProvidedAmount: provided}
}

func TestIngestConstructionSnapshot_SkipsInvalidMaterials(t *testing.T) {
	// Arrange
	env, _ := newEnvironment(t)

	// Act
	resp := ingest(t, env, "HIP 87621:Vega Point", "HIP 87621",
		material("$steel_name;", 500, 100),
		material("", 10, 0),
		material("$gold_name;", -1, 0),
		material("$aluminium_name;", 80, 0),
	)

	// Assert
	assert.True(t, resp.Stored)
	assert.Equal(t, 2, resp.MaterialCount)
	assert.Equal(t, []int{1, 2}, resp.SkippedEntries)
	assert.Equal(t, 1, env.Notifier.Refreshes())
}

func TestIngestConstructionSnapshot_RejectsBlankFacility(t *testing.T) {
	env, _ := newEnvironment(t)

	_, err := env.Mediator.Send(context.Background(), &constructionCmd.IngestConstructionSnapshotCommand{
		FacilityID: "  ",
		Materials:  []constructionCmd.MaterialInput{material("steel", 1, 0)},
	})

	assert.Error(t, err)
}

func TestRemoveFacility_StrictReportsUnknownFacility(t *testing.T) {
	// Arrange
	env, _ := newEnvironment(t)
	ingest(t, env, "HIP 87621:Vega Point", "HIP 87621", material("steel", 10, 0))

	// Act
	_, strictErr := env.Mediator.Send(context.Background(), &constructionCmd.RemoveFacilityCommand{
		FacilityID: "HIP 87621:Unknown", Strict: true,
	})
	lenient, lenientErr := env.Mediator.Send(context.Background(), &constructionCmd.RemoveFacilityCommand{
		FacilityID: "HIP 87621:Unknown",
	})
	removed, removeErr := env.Mediator.Send(context.Background(), &constructionCmd.RemoveFacilityCommand{
		FacilityID: "HIP 87621;Vega Point", Strict: true,
	})

	// Assert
	var notFound *shared.FacilityNotFoundError
	assert.True(t, errors.As(strictErr, &notFound))
	require.NoError(t, lenientErr)
	assert.False(t, lenient.(*constructionCmd.RemoveFacilityResponse).Removed)
	require.NoError(t, removeErr)
	assert.True(t, removed.(*constructionCmd.RemoveFacilityResponse).Removed)
	assert.Empty(t, env.Store.Load(context.Background()))
}

func TestListFacilities_FiltersAndSorts(t *testing.T) {
	// Arrange
	env, _ := newEnvironment(t)
	ingest(t, env, "Sol:Zeta Hub", "Sol", material("steel", 10, 0))
	ingest(t, env, "Alpha Centauri:Beta Yard", "Alpha Centauri", material("steel", 10, 5))
	ingest(t, env, "Sol:Abraham Works", "Sol", material("steel", 10, 0))

	// Act
	bySystem, err := env.Mediator.Send(context.Background(), &constructionQuery.ListFacilitiesQuery{SortBySystem: true})
	require.NoError(t, err)
	solOnly, err := env.Mediator.Send(context.Background(), &constructionQuery.ListFacilitiesQuery{System: "Sol"})
	require.NoError(t, err)

	// Assert
	list := bySystem.(*constructionQuery.ListFacilitiesResponse)
	require.Len(t, list.Facilities, 3)
	assert.Equal(t, "Beta Yard", list.Facilities[0].DisplayName)
	assert.Equal(t, "Abraham Works", list.Facilities[1].DisplayName)
	assert.Equal(t, "Zeta Hub", list.Facilities[2].DisplayName)
	assert.Equal(t, []string{"Alpha Centauri", "Sol"}, list.Systems)

	filtered := solOnly.(*constructionQuery.ListFacilitiesResponse)
	assert.Len(t, filtered.Facilities, 2)
	assert.Equal(t, []string{"Alpha Centauri", "Sol"}, filtered.Systems, "system list ignores the filter")
}

func TestGetFacilityView_CrossReferencesSupply(t *testing.T) {
	// Arrange
	env, _ := newEnvironment(t)
	ingest(t, env, "HIP 87621:Vega Point", "HIP 87621",
		material("$steel_name;", 500, 100),
		material("$gold_name;", 20, 20),
	)
	require.NoError(t, env.WriteMarket(`{"StationName": "Vega Market", "Items": [
		{"Name": "$steel_name;", "Name_Localised": "Steel", "Stock": 1200}
	]}`))
	require.NoError(t, env.WriteCargo(`{"Vessel": "Ship", "Inventory": [{"Name": "steel", "Count": 100}]}`))
	_, err := env.Mediator.Send(context.Background(), &carrierCmd.ApplyCargoTransfersCommand{
		Transfers: []carrier.Transfer{{CommodityName: "Steel", Count: 200, Direction: "tocarrier"}},
	})
	require.NoError(t, err)

	// Act
	resp, err := env.Mediator.Send(context.Background(), &constructionQuery.GetFacilityViewQuery{
		FacilityID:    "HIP 87621;Vega Point",
		HideProvided:  true,
		CargoCapacity: 100,
	})

	// Assert
	require.NoError(t, err)
	views := resp.(*constructionQuery.GetFacilityViewResponse).Views
	require.Len(t, views, 1)
	view := views[0]
	assert.Equal(t, "Vega Point", view.DisplayName)
	assert.Equal(t, "Vega Market", view.MarketStation)
	require.Len(t, view.Rows, 1, "gold is fully provided and hidden")
	row := view.Rows[0]
	assert.Equal(t, 400, row.Needed)
	assert.Equal(t, 1200, row.MarketStock)
	assert.True(t, row.ForSale)
	assert.Equal(t, 200, row.CarrierQuantity)
	assert.Equal(t, 100, row.ShipQuantity)
	assert.Equal(t, 100, row.Shortfall)
	assert.Equal(t, 4, view.Summary.RequiredTrips)
	assert.Equal(t, 400, view.Summary.OutstandingUnits)
	assert.Equal(t, 100, view.Summary.ShipCargoUnits)
}

func TestGetFacilityView_MissingGameFilesGiveEmptySupply(t *testing.T) {
	env, _ := newEnvironment(t)
	ingest(t, env, "Sol:Abraham Works", "Sol", material("steel", 10, 0))

	resp, err := env.Mediator.Send(context.Background(), &constructionQuery.GetFacilityViewQuery{System: "Sol"})

	require.NoError(t, err)
	views := resp.(*constructionQuery.GetFacilityViewResponse).Views
	require.Len(t, views, 1)
	assert.False(t, views[0].Rows[0].ForSale)
	assert.Equal(t, 10, views[0].Rows[0].Shortfall)
}

func TestGetFacilityView_UnknownFacility(t *testing.T) {
	env, _ := newEnvironment(t)

	_, err := env.Mediator.Send(context.Background(), &constructionQuery.GetFacilityViewQuery{FacilityID: "Sol:Nowhere"})

	var notFound *shared.FacilityNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCarrierSnapshotThenQuery(t *testing.T) {
	// Arrange
	env, _ := newEnvironment(t)

	// Act
	snap, err := env.Mediator.Send(context.Background(), &carrierCmd.ApplyCarrierSnapshotCommand{
		Items: []carrier.CargoItem{
			{Name: "$steel_name;", Quantity: 300},
			{Name: "Steel", Quantity: 20},
			{Name: "", Quantity: 5},
		},
		VanityNameHex: "4E6F726D616E6479",
		Callsign:      "K7Q-1HT",
	})
	require.NoError(t, err)
	resp, err := env.Mediator.Send(context.Background(), &carrierQuery.GetCarrierQuery{})
	require.NoError(t, err)

	// Assert
	applied := snap.(*carrierCmd.ApplyCarrierSnapshotResponse)
	assert.Equal(t, "Normandy", applied.CarrierName)
	assert.Equal(t, []int{2}, applied.SkippedItems)
	assert.True(t, applied.Persisted)

	ledger := resp.(*carrierQuery.GetCarrierResponse)
	assert.Equal(t, "K7Q-1HT", ledger.Callsign)
	assert.Equal(t, 320, ledger.TotalUnits)
	assert.Equal(t, []carrierQuery.CommodityStock{{Commodity: "steel", Quantity: 320}}, ledger.Commodities)
}

func TestRecordAndListEvents(t *testing.T) {
	// Arrange
	env, clock := newEnvironment(t)
	for _, kind := range []string{"Docked", "CargoTransfer", "Docked"} {
		_, err := env.Mediator.Send(context.Background(), &eventCmd.RecordEventCommand{
			Kind:    kind,
			Station: "Vega Point",
			Outcome: eventlog.OutcomeRefreshed,
		})
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	// Act
	resp, err := env.Mediator.Send(context.Background(), &eventQuery.ListEventsQuery{Kind: "Docked"})

	// Assert
	require.NoError(t, err)
	events := resp.(*eventQuery.ListEventsResponse).Events
	require.Len(t, events, 2)
	assert.True(t, events[0].Timestamp.After(events[1].Timestamp), "newest first")
	assert.Regexp(t, `^docked-[0-9a-f]{8}$`, events[0].ID)
	assert.Equal(t, "REFRESHED", events[0].Outcome)
}
