package construction

import "context"

// FacilityRepository persists the whole facility store as one document.
// LoadAll returns an empty map when nothing has been persisted yet and an
// error when the persisted data cannot be read or decoded.
type FacilityRepository interface {
	LoadAll(ctx context.Context) (map[FacilityID]*Facility, error)
	SaveAll(ctx context.Context, facilities map[FacilityID]*Facility) error
}

// RefreshNotifier is told about store changes so a live display can redraw
type RefreshNotifier interface {
	Refresh(ctx context.Context)
	Select(ctx context.Context, id FacilityID)
}

// NoopNotifier ignores all notifications
type NoopNotifier struct{}

func (NoopNotifier) Refresh(context.Context)            {}
func (NoopNotifier) Select(context.Context, FacilityID) {}
