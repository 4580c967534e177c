package carrier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/domain/carrier"
)

func TestLedger_OutboundTransferClampsAtZero(t *testing.T) {
	// Arrange
	ledger := carrier.ReconstructLedger("Test", "X1Y-2ZZ", map[string]int{"steel": 30})

	// Act
	result := ledger.ApplyTransfers([]carrier.Transfer{
		{CommodityName: "steel", Count: 100, Direction: "toship"},
	})

	// Assert
	assert.Equal(t, []int{0}, result.Applied)
	assert.Equal(t, 0, ledger.Quantity("steel"))
	assert.NotContains(t, ledger.Commodities(), "steel")
}

func TestLedger_InboundTransfersAccumulate(t *testing.T) {
	// Arrange
	ledger := carrier.NewLedger()

	// Act
	ledger.ApplyTransfers([]carrier.Transfer{
		{CommodityName: "$Steel_name;", Count: 120, Direction: "tocarrier"},
		{CommodityName: "steel", Count: 80, Direction: "to-carrier"},
	})

	// Assert
	assert.Equal(t, 200, ledger.Quantity("Steel"))
	assert.Equal(t, 200, ledger.TotalUnits())
}

func TestLedger_SkipsUnusableTransfers(t *testing.T) {
	// Arrange
	ledger := carrier.NewLedger()

	// Act
	result := ledger.ApplyTransfers([]carrier.Transfer{
		{CommodityName: "", Count: 5, Direction: "tocarrier"},
		{CommodityName: "gold", Count: 0, Direction: "tocarrier"},
		{CommodityName: "gold", Count: 5, Direction: "tomarket"},
		{CommodityName: "gold", Count: 5, Direction: "ToCarrier"},
	})

	// Assert
	assert.Equal(t, []int{0, 1, 2}, result.Skipped)
	assert.Equal(t, []int{3}, result.Applied)
	assert.Equal(t, 5, ledger.Quantity("gold"))
}

func TestLedger_FullSnapshotReplacesInventory(t *testing.T) {
	// Arrange
	ledger := carrier.ReconstructLedger("", "", map[string]int{"gold": 10})

	// Act
	result := ledger.ApplyFullSnapshot([]carrier.CargoItem{
		{Name: "Steel", Quantity: 100},
		{Name: "steel", Quantity: 20},
		{Name: "", Quantity: 7},
		{Name: "Titanium", Quantity: 0},
	}, carrier.Metadata{VanityNameHex: "4E6F726D616E6479", Callsign: "K7Q-1HT"})

	// Assert
	require.NoError(t, result.NameError)
	assert.Equal(t, []int{2}, result.SkippedItems)
	assert.Equal(t, 1, result.Commodities)
	assert.Equal(t, map[string]int{"steel": 120}, ledger.Commodities())
	assert.Equal(t, "Normandy", ledger.CarrierName())
	assert.Equal(t, "K7Q-1HT", ledger.Callsign())
}

func TestReconstructLedger_DropsNegativeAndMergesKeys(t *testing.T) {
	ledger := carrier.ReconstructLedger("C", "CS", map[string]int{
		"Steel":        10,
		"$steel_name;": 5,
		"gold":         -3,
	})

	assert.Equal(t, map[string]int{"steel": 15}, ledger.Commodities())
	assert.Equal(t, []string{"steel"}, ledger.CommodityNames())
}

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		want carrier.Direction
		ok   bool
	}{
		"tocarrier":  {carrier.DirectionToCarrier, true},
		"to-carrier": {carrier.DirectionToCarrier, true},
		"ToShip":     {carrier.DirectionToShip, true},
		"to_ship":    {carrier.DirectionToShip, true},
		"tosrv":      {"", false},
		"":           {"", false},
	}

	for raw, tt := range tests {
		t.Run(raw, func(t *testing.T) {
			got, ok := carrier.ParseDirection(raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
