package persistence_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/persistence"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

func TestJSONFacilityRepository_MissingFileIsEmpty(t *testing.T) {
	repo := persistence.NewJSONFacilityRepository(filepath.Join(t.TempDir(), "nope", persistence.FacilityFileName))

	facilities, err := repo.LoadAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, facilities)
}

func TestJSONFacilityRepository_ReadsExistingDocument(t *testing.T) {
	// Arrange: the on-disk layout written by earlier versions
	path := filepath.Join(t.TempDir(), persistence.FacilityFileName)
	doc := `{
    "Sol:Alpha Station": {
        "system": "Sol",
        "materials": {
            "$steel_name;": {"Name_Localised": "Steel", "RequiredAmount": 1000, "ProvidedAmount": 200},
            "$aluminium_name;": {"Name_Localised": "Aluminium", "RequiredAmount": 500, "ProvidedAmount": 0},
            "$ceramiccomposites_name;": {"Name_Localised": "Ceramic Composites", "RequiredAmount": 80, "ProvidedAmount": 80}
        }
    }
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	// Act
	facilities, err := persistence.NewJSONFacilityRepository(path).LoadAll(context.Background())

	// Assert
	require.NoError(t, err)
	require.Contains(t, facilities, construction.FacilityID("Sol:Alpha Station"))
	all := facilities["Sol:Alpha Station"].Materials().All()
	require.Len(t, all, 3)
	assert.Equal(t, "$steel_name;", all[0].Symbol())
	assert.Equal(t, "$aluminium_name;", all[1].Symbol())
	assert.Equal(t, "$ceramiccomposites_name;", all[2].Symbol())
	assert.Equal(t, "Ceramic Composites", all[2].DisplayName())
	assert.Equal(t, 800, all[0].Needed())
}

func TestJSONFacilityRepository_RoundTripKeepsMaterialOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), persistence.FacilityFileName)
	repo := persistence.NewJSONFacilityRepository(path)

	symbols := []string{"$zinc_name;", "$aluminium_name;", "$steel_name;", "$copper_name;"}
	set := construction.NewMaterialSet()
	for i, symbol := range symbols {
		m, err := construction.NewMaterialRequirement(symbol, strings.Trim(symbol, "$;"), 100*(i+1), i)
		require.NoError(t, err)
		set.Put(m)
	}

	// Act
	require.NoError(t, repo.SaveAll(ctx, map[construction.FacilityID]*construction.Facility{
		"HIP 1:Site": construction.NewFacility("HIP 1:Site", "HIP 1", set),
	}))
	loaded, err := repo.LoadAll(ctx)

	// Assert
	require.NoError(t, err)
	assert.True(t, loaded["HIP 1:Site"].Materials().Equal(set))
	assert.Equal(t, "HIP 1", loaded["HIP 1:Site"].System())
}

func TestJSONFacilityRepository_WriteLeavesNoTempFiles(t *testing.T) {
	// Arrange
	ctx := context.Background()
	dir := t.TempDir()
	repo := persistence.NewJSONFacilityRepository(filepath.Join(dir, persistence.FacilityFileName))
	m, err := construction.NewMaterialRequirement("$gold_name;", "Gold", 5, 1)
	require.NoError(t, err)

	// Act
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.SaveAll(ctx, map[construction.FacilityID]*construction.Facility{
			"Sol:A": construction.NewFacility("Sol:A", "Sol", construction.NewMaterialSet(m)),
		}))
	}

	// Assert
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, persistence.FacilityFileName, entries[0].Name())
}

func TestJSONFacilityRepository_RejectsMalformedDocuments(t *testing.T) {
	tests := map[string]string{
		"not json":          "garbage",
		"materials array":   `{"Sol:A": {"system": "Sol", "materials": []}}`,
		"negative required": `{"Sol:A": {"system": "Sol", "materials": {"$gold_name;": {"RequiredAmount": -1}}}}`,
		"empty identity":    `{"": {"system": "Sol", "materials": {}}}`,
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), persistence.FacilityFileName)
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

			_, err := persistence.NewJSONFacilityRepository(path).LoadAll(context.Background())

			assert.Error(t, err)
		})
	}
}

func TestJSONFacilityRepository_NullMaterialsLoadAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), persistence.FacilityFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"Sol:A": {"system": "Sol", "materials": null}}`), 0o644))

	facilities, err := persistence.NewJSONFacilityRepository(path).LoadAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, facilities["Sol:A"].Materials().Len())
	assert.True(t, facilities["Sol:A"].IsComplete())
}
