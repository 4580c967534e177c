package journal_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/architect-tracker/internal/adapters/journal"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

const sampleJournal = `{ "timestamp":"2025-04-01T12:00:00Z", "event":"Fileheader", "part":1, "gameversion":"4.1.0.100", "build":"r312345/r0 " }
{ "timestamp":"2025-04-01T12:00:01Z", "event":"Commander", "FID":"F123", "Name":"Jameson" }
{ "timestamp":"2025-04-01T12:00:05Z", "event":"Location", "Docked":false, "StarSystem":"HIP 87621" }
{ "timestamp":"2025-04-01T12:05:00Z", "event":"Docked", "StationName":"Orbital Construction Site: Vega Point", "StarSystem":"HIP 87621" }
{ "timestamp":"2025-04-01T12:05:02Z", "event":"ColonisationConstructionDepot", "MarketID":3960001, "ConstructionProgress":0.1, "ResourcesRequired":[ { "Name":"$steel_name;", "Name_Localised":"Steel", "RequiredAmount":6000, "ProvidedAmount":600, "Payment":5000 } ] }
not json at all
{ "timestamp":"2025-04-01T12:06:00Z", "event":"Music", "MusicTrack":"Starport" }
{ "timestamp":"2025-04-01T12:07:00Z", "event":"Undocked", "StationName":"Orbital Construction Site: Vega Point" }
`

func TestFeeder_ReplayRoutesWithTrackedLocation(t *testing.T) {
	// Arrange
	env := newEnv(t)
	feeder := journal.NewFeeder(env.Router, nil)

	// Act
	stats, err := feeder.Replay(context.Background(), strings.NewReader(sampleJournal))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8, stats.Lines)
	assert.Equal(t, 1, stats.Malformed)
	assert.Equal(t, 1, stats.Outcomes[eventlog.OutcomeApplied])
	assert.Equal(t, 2, stats.Outcomes[eventlog.OutcomeRefreshed])
	assert.Equal(t, 4, stats.Outcomes[eventlog.OutcomeIgnored])

	f, ok := env.Store.Get(context.Background(), "Orbital Construction Site: Vega Point")
	require.True(t, ok)
	assert.Equal(t, "HIP 87621", f.System())

	state := feeder.State()
	assert.Equal(t, "Jameson", state.Commander())
	assert.Equal(t, "", state.Station())
	assert.False(t, state.IsBeta())
}

func TestGameState_TracksLocation(t *testing.T) {
	state := journal.NewGameState()

	state.Observe(map[string]interface{}{"event": "Fileheader", "gameversion": "4.2.0.1 Beta"})
	state.Observe(map[string]interface{}{"event": "LoadGame", "Commander": "Jameson"})
	state.Observe(map[string]interface{}{"event": "Location", "StarSystem": "Sol", "Docked": true, "StationName": "Abraham Lincoln"})

	assert.True(t, state.IsBeta())
	assert.Equal(t, "Jameson", state.Commander())
	assert.Equal(t, "Abraham Lincoln", state.Station())

	state.Observe(map[string]interface{}{"event": "FSDJump", "StarSystem": "Alpha Centauri"})
	assert.Equal(t, "Alpha Centauri", state.System())
	assert.Equal(t, "", state.Station())
	assert.Equal(t, map[string]interface{}{
		"Commander":   "Jameson",
		"SystemName":  "Alpha Centauri",
		"StationName": "",
	}, state.AsMap())
}

func TestNewestJournal(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	for _, name := range []string{
		"Journal.2025-03-30T101010.01.log",
		"Journal.2025-04-01T120000.01.log",
		"Journal.2025-04-01T120000.02.log",
		"Status.json",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	// Act
	newest, err := journal.NewestJournal(dir)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Journal.2025-04-01T120000.02.log"), newest)

	none, err := journal.NewestJournal(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, none)
}
