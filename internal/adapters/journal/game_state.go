package journal

import (
	"strings"
	"sync"
)

// GameState follows the commander's location through the journal. The
// router relies on it when the tracker runs without a host.
type GameState struct {
	mu        sync.RWMutex
	commander string
	system    string
	station   string
	isBeta    bool
}

// NewGameState creates an empty game state
func NewGameState() *GameState {
	return &GameState{}
}

// Observe updates the state from one journal event
func (g *GameState) Observe(entry map[string]interface{}) {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch stringField(entry, "event") {
	case "Fileheader":
		version := strings.ToLower(stringField(entry, "gameversion"))
		g.isBeta = strings.Contains(version, "beta")
	case "Commander":
		g.commander = stringField(entry, "Name")
	case "LoadGame":
		g.commander = stringField(entry, "Commander")
		g.station = ""
	case "Location", "CarrierJump":
		g.system = stringField(entry, "StarSystem")
		if docked, _ := entry["Docked"].(bool); docked {
			g.station = stringField(entry, "StationName")
		} else {
			g.station = ""
		}
	case "FSDJump":
		g.system = stringField(entry, "StarSystem")
		g.station = ""
	case "Docked":
		if system := stringField(entry, "StarSystem"); system != "" {
			g.system = system
		}
		g.station = stringField(entry, "StationName")
	case "Undocked":
		g.station = ""
	}
}

// Commander is the current commander name
func (g *GameState) Commander() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.commander
}

// System is the current star system
func (g *GameState) System() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.system
}

// Station is the station the ship is docked at, empty in flight
func (g *GameState) Station() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.station
}

// IsBeta reports whether the journal comes from a beta build
func (g *GameState) IsBeta() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.isBeta
}

// AsMap exposes the state the way a host passes it to the router
func (g *GameState) AsMap() map[string]interface{} {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return map[string]interface{}{
		"Commander":   g.commander,
		"SystemName":  g.system,
		"StationName": g.station,
	}
}
