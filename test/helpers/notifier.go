package helpers

import (
	"context"
	"sync"

	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

// RecordingNotifier counts refreshes and remembers selections
type RecordingNotifier struct {
	mu        sync.Mutex
	refreshes int
	selected  []construction.FacilityID
}

var _ construction.RefreshNotifier = (*RecordingNotifier)(nil)

func (n *RecordingNotifier) Refresh(ctx context.Context) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.refreshes++
}

func (n *RecordingNotifier) Select(ctx context.Context, id construction.FacilityID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = append(n.selected, id)
}

// Refreshes returns how many refreshes were signalled
func (n *RecordingNotifier) Refreshes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.refreshes
}

// Selected returns the selections in order
func (n *RecordingNotifier) Selected() []construction.FacilityID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]construction.FacilityID(nil), n.selected...)
}
