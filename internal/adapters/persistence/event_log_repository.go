package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
)

// GormEventLogRepository is a GORM-based implementation of eventlog.Repository
type GormEventLogRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormEventLogRepository creates a new event log repository
// If clock is nil, uses RealClock (production behavior)
func NewGormEventLogRepository(db *gorm.DB, clock shared.Clock) *GormEventLogRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormEventLogRepository{db: db, clock: clock}
}

// Append stores one entry. A zero timestamp is stamped with the clock.
func (r *GormEventLogRepository) Append(ctx context.Context, entry *eventlog.Entry) error {
	if entry == nil {
		return fmt.Errorf("event log entry cannot be nil")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = r.clock.Now().UTC()
	}

	model := &EventLogModel{
		EventID:   entry.ID,
		Timestamp: entry.Timestamp,
		Kind:      entry.Kind,
		Commander: entry.Commander,
		System:    entry.System,
		Station:   entry.Station,
		Outcome:   string(entry.Outcome),
		Detail:    entry.Detail,
		Payload:   datatypes.JSON(entry.Payload),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to append event %s: %w", entry.ID, err)
	}
	return nil
}

// List returns entries newest first
func (r *GormEventLogRepository) List(ctx context.Context, filter eventlog.Filter) ([]*eventlog.Entry, error) {
	var models []EventLogModel

	query := r.db.WithContext(ctx).Order("timestamp DESC").Order("seq DESC")
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	entries := make([]*eventlog.Entry, len(models))
	for i, model := range models {
		entries[i] = &eventlog.Entry{
			ID:        model.EventID,
			Timestamp: model.Timestamp,
			Kind:      model.Kind,
			Commander: model.Commander,
			System:    model.System,
			Station:   model.Station,
			Outcome:   eventlog.Outcome(model.Outcome),
			Detail:    model.Detail,
			Payload:   payloadOf(model.Payload),
		}
	}
	return entries, nil
}

// payloadOf maps a NULL column, which scans as JSON null, back to no payload
func payloadOf(raw datatypes.JSON) json.RawMessage {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.RawMessage(raw)
}
