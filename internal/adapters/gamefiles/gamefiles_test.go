package gamefiles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/gamefiles"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMarketReader_ReadsStock(t *testing.T) {
	// Arrange
	path := writeFile(t, "Market.json", `{
		"timestamp": "2025-04-01T12:00:00Z", "event": "Market",
		"StationName": "Jameson Memorial", "StarSystem": "Shinrarta Dezhra",
		"Items": [
			{"id": 128049204, "Name": "$steel_name;", "Name_Localised": "Steel", "Stock": 1200},
			{"id": 128049202, "Name": "$gold_name;", "Name_Localised": "Gold", "Stock": 0},
			{"id": 1, "Name": "", "Stock": 9}
		]
	}`)

	// Act
	mkt, err := gamefiles.NewMarketReader(path).ReadMarket(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Jameson Memorial", mkt.StationName())
	assert.Equal(t, 2, mkt.GoodsCount())
	assert.Equal(t, 1200, mkt.StockOf("Steel"))
	assert.Equal(t, 0, mkt.StockOf("gold"))
	assert.False(t, mkt.FindGood("gold").IsForSale())
}

func TestMarketReader_MissingFileIsEmpty(t *testing.T) {
	mkt, err := gamefiles.NewMarketReader(filepath.Join(t.TempDir(), "Market.json")).ReadMarket(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, mkt.GoodsCount())
}

func TestMarketReader_MalformedFileReturnsEmptyAndError(t *testing.T) {
	path := writeFile(t, "Market.json", `{"Items": [`)

	mkt, err := gamefiles.NewMarketReader(path).ReadMarket(context.Background())

	assert.Error(t, err)
	require.NotNil(t, mkt)
	assert.Equal(t, 0, mkt.GoodsCount())
}

func TestCargoReader_ReadsShipHold(t *testing.T) {
	// Arrange
	path := writeFile(t, "Cargo.json", `{
		"event": "Cargo", "Vessel": "Ship", "Count": 724,
		"Inventory": [
			{"Name": "steel", "Name_Localised": "Steel", "Count": 700, "Stolen": 0},
			{"Name": "gold", "Count": 24, "Stolen": 0},
			{"Name": "", "Count": 3}
		]
	}`)

	// Act
	cargo, err := gamefiles.NewCargoReader(path).ReadCargo(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 700, cargo.GetItemUnits("$steel_name;"))
	assert.Equal(t, 724, cargo.TotalUnits())
}

func TestCargoReader_SRVHoldIsIgnored(t *testing.T) {
	path := writeFile(t, "Cargo.json", `{"Vessel": "SRV", "Inventory": [{"Name": "gold", "Count": 2}]}`)

	cargo, err := gamefiles.NewCargoReader(path).ReadCargo(context.Background())

	require.NoError(t, err)
	assert.True(t, cargo.IsEmpty())
}

func TestCargoReader_MissingAndMalformed(t *testing.T) {
	cargo, err := gamefiles.NewCargoReader(filepath.Join(t.TempDir(), "Cargo.json")).ReadCargo(context.Background())
	require.NoError(t, err)
	assert.True(t, cargo.IsEmpty())

	cargo, err = gamefiles.NewCargoReader(writeFile(t, "Cargo.json", "nope")).ReadCargo(context.Background())
	assert.Error(t, err)
	assert.True(t, cargo.IsEmpty())
}
