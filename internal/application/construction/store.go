package construction

import (
	"context"
	"sort"
	"sync"

	"github.com/andrescamacho/architect-tracker/internal/adapters/metrics"
	"github.com/andrescamacho/architect-tracker/internal/application/logging"
	"github.com/andrescamacho/architect-tracker/internal/domain/construction"
)

const storeName = "facilities"

// IngestOutcome describes the effect of one depot snapshot
type IngestOutcome struct {
	FacilityID construction.FacilityID
	Stored     bool // facility is (still) tracked
	Pruned     bool // facility was complete and is no longer tracked
	Persisted  bool
	Held       bool // partial snapshot looked complete; nothing was changed
}

// Store is the facility requirement store. It owns the persisted facility
// document for this process; every load-modify-persist sequence runs under
// one mutex because the document covers all facilities.
//
// After a failed write the in-memory copy stays authoritative and the next
// mutation (or load) rewrites the whole document.
type Store struct {
	mu         sync.Mutex
	repo       construction.FacilityRepository
	notifier   construction.RefreshNotifier
	logger     logging.Logger
	facilities map[construction.FacilityID]*construction.Facility
	dirty      bool
}

// NewStore creates a facility store. A nil notifier or logger is replaced with a no-op.
func NewStore(repo construction.FacilityRepository, notifier construction.RefreshNotifier, logger logging.Logger) *Store {
	if notifier == nil {
		notifier = construction.NoopNotifier{}
	}
	return &Store{
		repo:     repo,
		notifier: notifier,
		logger:   logging.OrNoOp(logger),
	}
}

// SetNotifier swaps the refresh observer (a display attached after start-up)
func (s *Store) SetNotifier(notifier construction.RefreshNotifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if notifier == nil {
		notifier = construction.NoopNotifier{}
	}
	s.notifier = notifier
}

// Notifier returns the current refresh observer
func (s *Store) Notifier() construction.RefreshNotifier {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notifier
}

// IngestSnapshot replaces a facility's materials with a depot snapshot.
// A complete snapshot removes the facility instead of storing it.
func (s *Store) IngestSnapshot(ctx context.Context, id construction.FacilityID, system string, materials *construction.MaterialSet) IngestOutcome {
	return s.ingest(ctx, id, system, materials, true)
}

// IngestPartialSnapshot takes the usable lines of a depot snapshot that also
// carried malformed entries. It never prunes: the dropped entries may be the
// outstanding ones, so a set that looks complete leaves the store untouched.
func (s *Store) IngestPartialSnapshot(ctx context.Context, id construction.FacilityID, system string, materials *construction.MaterialSet) IngestOutcome {
	return s.ingest(ctx, id, system, materials, false)
}

func (s *Store) ingest(ctx context.Context, id construction.FacilityID, system string, materials *construction.MaterialSet, allowPrune bool) IngestOutcome {
	s.mu.Lock()
	facilities := s.currentLocked(ctx)
	outcome := IngestOutcome{FacilityID: id}

	switch {
	case materials.IsComplete() && !allowPrune:
		_, existed := facilities[id]
		outcome.Stored = existed
		outcome.Held = true
		outcome.Persisted = !s.dirty
		s.mu.Unlock()
		s.logger.Log(logging.LevelWarn, "Partial construction snapshot looks complete, facility left unchanged", map[string]interface{}{
			"facility": id.String(),
			"system":   system,
			"tracked":  existed,
		})
		return outcome
	case materials.IsComplete():
		_, existed := facilities[id]
		delete(facilities, id)
		outcome.Pruned = existed
		s.logger.Log(logging.LevelInfo, "Construction complete, facility pruned", map[string]interface{}{
			"facility": id.String(),
			"system":   system,
			"existed":  existed,
		})
	default:
		facilities[id] = construction.NewFacility(id, system, materials.Clone())
		outcome.Stored = true
		s.logger.Log(logging.LevelInfo, "Construction snapshot stored", map[string]interface{}{
			"facility":  id.String(),
			"system":    system,
			"materials": materials.Len(),
		})
	}

	outcome.Persisted = s.persistLocked(ctx, facilities)
	notifier := s.notifier
	s.mu.Unlock()

	notifier.Refresh(ctx)
	return outcome
}

// Load returns the tracked facilities. Complete facilities and legacy
// identities found on disk are cleaned up and the file is rewritten, but only
// when something changed. Unreadable data yields an empty map.
func (s *Store) Load(ctx context.Context) map[construction.FacilityID]*construction.Facility {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyFacilities(s.currentLocked(ctx))
}

// Get returns one tracked facility
func (s *Store) Get(ctx context.Context, id construction.FacilityID) (*construction.Facility, bool) {
	facilities := s.Load(ctx)
	f, ok := facilities[id]
	return f, ok
}

// RemoveFacility deletes a facility unconditionally and rewrites the store.
// It reports whether the facility was tracked.
func (s *Store) RemoveFacility(ctx context.Context, id construction.FacilityID) bool {
	s.mu.Lock()
	facilities := s.currentLocked(ctx)
	_, existed := facilities[id]
	delete(facilities, id)
	s.persistLocked(ctx, facilities)
	notifier := s.notifier
	s.mu.Unlock()

	s.logger.Log(logging.LevelInfo, "Facility removed", map[string]interface{}{
		"facility": id.String(),
		"existed":  existed,
	})
	notifier.Refresh(ctx)
	return existed
}

// IDs returns the tracked identities sorted
func (s *Store) IDs(ctx context.Context) []construction.FacilityID {
	facilities := s.Load(ctx)
	ids := make([]construction.FacilityID, 0, len(facilities))
	for id := range facilities {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// currentLocked returns the working copy: memory after a failed write,
// otherwise a fresh, self-healed read of the persisted document.
func (s *Store) currentLocked(ctx context.Context) map[construction.FacilityID]*construction.Facility {
	if s.dirty && s.facilities != nil {
		s.persistLocked(ctx, s.facilities)
		return s.facilities
	}

	loaded, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.logger.Log(logging.LevelError, "Failed to read facility store, starting empty", map[string]interface{}{
			"error": err.Error(),
		})
		s.facilities = make(map[construction.FacilityID]*construction.Facility)
		metrics.SetFacilitiesTracked(0)
		return s.facilities
	}

	healed, changed := heal(loaded)
	if changed {
		s.logger.Log(logging.LevelInfo, "Facility store cleaned up", map[string]interface{}{
			"before": len(loaded),
			"after":  len(healed),
		})
		s.persistLocked(ctx, healed)
	}
	s.facilities = healed
	metrics.SetFacilitiesTracked(len(healed))
	return s.facilities
}

func (s *Store) persistLocked(ctx context.Context, facilities map[construction.FacilityID]*construction.Facility) bool {
	s.facilities = facilities
	metrics.SetFacilitiesTracked(len(facilities))

	if err := s.repo.SaveAll(ctx, facilities); err != nil {
		s.dirty = true
		metrics.RecordPersistenceError(storeName)
		s.logger.Log(logging.LevelError, "Failed to write facility store, keeping in-memory state", map[string]interface{}{
			"error":      err.Error(),
			"facilities": len(facilities),
		})
		return false
	}
	s.dirty = false
	return true
}

// heal drops complete facilities and moves legacy ";" identities to their
// canonical form. When both forms exist the canonical entry wins.
func heal(loaded map[construction.FacilityID]*construction.Facility) (map[construction.FacilityID]*construction.Facility, bool) {
	healed := make(map[construction.FacilityID]*construction.Facility, len(loaded))
	changed := false

	for id, f := range loaded {
		if f == nil || f.IsComplete() {
			changed = true
			continue
		}
		if id.IsLegacy() {
			changed = true
			continue
		}
		healed[id] = f
	}

	for id, f := range loaded {
		if f == nil || f.IsComplete() || !id.IsLegacy() {
			continue
		}
		canonical := construction.CanonicalFacilityID(id.String())
		if _, exists := healed[canonical]; exists {
			continue
		}
		healed[canonical] = f.WithID(canonical)
	}

	return healed, changed
}

func copyFacilities(in map[construction.FacilityID]*construction.Facility) map[construction.FacilityID]*construction.Facility {
	out := make(map[construction.FacilityID]*construction.Facility, len(in))
	for id, f := range in {
		out[id] = f.Clone()
	}
	return out
}
