package construction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

func mustMaterial(t *testing.T, symbol, display string, required, provided int) construction.MaterialRequirement {
	t.Helper()
	m, err := construction.NewMaterialRequirement(symbol, display, required, provided)
	require.NoError(t, err)
	return m
}

func TestNewFacilityID_CanonicalizesLegacySeparator(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    construction.FacilityID
		display string
	}{
		{"canonical", "Sol:Alpha Station", "Sol:Alpha Station", "Alpha Station"},
		{"legacy", "Sol;Alpha Station", "Sol:Alpha Station", "Alpha Station"},
		{"no separator", "Alpha Station", "Alpha Station", "Alpha Station"},
		{"surrounding space", "  Orbital Construction Site: Beta  ", "Orbital Construction Site: Beta", "Beta"},
		{"colon wins over semicolon", "A;B:C", "A;B:C", "C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			id, err := construction.NewFacilityID(tt.raw)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.display, id.DisplayName())
			assert.False(t, id.IsLegacy())
		})
	}
}

func TestNewFacilityID_RejectsBlank(t *testing.T) {
	_, err := construction.NewFacilityID("   ")
	assert.Error(t, err)
}

func TestFacilityID_DisplayNameAcceptsLegacyForm(t *testing.T) {
	id := construction.FacilityID("Sol;Alpha Station")

	assert.True(t, id.IsLegacy())
	assert.Equal(t, "Alpha Station", id.DisplayName())
}

func TestFacilityID_MatchesStation(t *testing.T) {
	id := construction.FacilityID("Planetary Construction Site:Mackenzie Landing")

	assert.True(t, id.MatchesStation("mackenzie landing"))
	assert.True(t, id.MatchesStation("Planetary Construction Site"))
	assert.False(t, id.MatchesStation(""))
	assert.False(t, id.MatchesStation("Jameson Memorial"))
}

func TestMaterialRequirement_NeededAndOutstanding(t *testing.T) {
	// Arrange
	under := mustMaterial(t, "$steel_name;", "Steel", 100, 40)
	over := mustMaterial(t, "$gold_name;", "Gold", 50, 80)

	// Assert
	assert.Equal(t, 60, under.Needed())
	assert.Equal(t, 60, under.Outstanding())
	assert.False(t, under.IsProvided())
	assert.Equal(t, "steel", under.CommodityKey())

	assert.Equal(t, -30, over.Needed())
	assert.Equal(t, 0, over.Outstanding())
	assert.True(t, over.IsProvided())
}

func TestNewMaterialRequirement_Validation(t *testing.T) {
	_, err := construction.NewMaterialRequirement("", "Steel", 1, 0)
	assert.Error(t, err)

	_, err = construction.NewMaterialRequirement("$steel_name;", "Steel", -1, 0)
	assert.Error(t, err)

	_, err = construction.NewMaterialRequirement("$steel_name;", "Steel", 1, -1)
	assert.Error(t, err)
}

func TestMaterialSet_KeepsInsertionOrderOnReplace(t *testing.T) {
	// Arrange
	set := construction.NewMaterialSet(
		mustMaterial(t, "$steel_name;", "Steel", 100, 0),
		mustMaterial(t, "$aluminium_name;", "Aluminium", 50, 0),
	)

	// Act
	set.Put(mustMaterial(t, "$steel_name;", "Steel", 100, 25))

	// Assert
	all := set.All()
	require.Len(t, all, 2)
	assert.Equal(t, "$steel_name;", all[0].Symbol())
	assert.Equal(t, 25, all[0].ProvidedAmount())
	assert.Equal(t, "$aluminium_name;", all[1].Symbol())
}

func TestMaterialSet_IsComplete(t *testing.T) {
	assert.True(t, construction.NewMaterialSet().IsComplete())

	done := construction.NewMaterialSet(mustMaterial(t, "$gold_name;", "Gold", 500, 500))
	assert.True(t, done.IsComplete())

	open := construction.NewMaterialSet(
		mustMaterial(t, "$gold_name;", "Gold", 500, 500),
		mustMaterial(t, "$steel_name;", "Steel", 10, 9),
	)
	assert.False(t, open.IsComplete())
}

func TestFacility_WithIDKeepsMaterials(t *testing.T) {
	materials := construction.NewMaterialSet(mustMaterial(t, "$gold_name;", "Gold", 500, 100))
	f := construction.NewFacility("Sol;Alpha", "Sol", materials)

	moved := f.WithID("Sol:Alpha")

	assert.Equal(t, construction.FacilityID("Sol:Alpha"), moved.ID())
	assert.True(t, moved.Materials().Equal(f.Materials()))
	assert.False(t, moved.Equal(f))
	assert.Equal(t, "Alpha", moved.DisplayName())
}
