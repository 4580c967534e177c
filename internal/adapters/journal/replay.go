package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

const maxLineBytes = 1 << 20

// ReplayStats counts what a replay did
type ReplayStats struct {
	Lines     int                      `json:"lines" yaml:"lines"`
	Malformed int                      `json:"malformed" yaml:"malformed"`
	Outcomes  map[eventlog.Outcome]int `json:"outcomes" yaml:"outcomes"`
}

// Feeder pushes journal lines through the game state and the router
type Feeder struct {
	router *Router
	state  *GameState
}

// NewFeeder creates a feeder. A nil state starts from an empty GameState.
func NewFeeder(router *Router, state *GameState) *Feeder {
	if state == nil {
		state = NewGameState()
	}
	return &Feeder{router: router, state: state}
}

// State returns the game state the feeder maintains
func (f *Feeder) State() *GameState {
	return f.state
}

// FeedLine decodes and routes one journal line. ok is false for a line that
// is not a JSON object.
func (f *Feeder) FeedLine(ctx context.Context, line []byte) (eventlog.Outcome, bool) {
	entry, ok := decodeLine(line)
	if !ok {
		return "", false
	}
	f.state.Observe(entry)
	return f.router.JournalEntry(
		ctx,
		f.state.Commander(),
		f.state.IsBeta(),
		f.state.System(),
		f.state.Station(),
		entry,
		f.state.AsMap(),
	), true
}

// ObserveLine updates the game state without routing the event
func (f *Feeder) ObserveLine(line []byte) bool {
	entry, ok := decodeLine(line)
	if ok {
		f.state.Observe(entry)
	}
	return ok
}

// Replay feeds a whole journal through the router, line by line
func (f *Feeder) Replay(ctx context.Context, r io.Reader) (ReplayStats, error) {
	stats := ReplayStats{Outcomes: make(map[eventlog.Outcome]int)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.Lines++
		outcome, ok := f.FeedLine(ctx, line)
		if !ok {
			stats.Malformed++
			continue
		}
		stats.Outcomes[outcome]++
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("failed to read journal: %w", err)
	}
	metrics.RecordSkippedEntries("journal_line", stats.Malformed)
	return stats, nil
}

func decodeLine(line []byte) (map[string]interface{}, bool) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()
	var entry map[string]interface{}
	if err := dec.Decode(&entry); err != nil || entry == nil {
		return nil, false
	}
	return entry, true
}
