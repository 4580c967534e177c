package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
	"github.com/andrescamacho/architect-tracker/internal/domain/shared"
	"github.com/andrescamacho/architect-tracker/pkg/utils"
)

// RecordEventCommand appends one routed notification to the event log
type RecordEventCommand struct {
	Kind      string
	Commander string
	System    string
	Station   string
	Outcome   eventlog.Outcome
	Detail    string
	// Payload is marshalled as JSON; nil stores nothing
	Payload map[string]interface{}
}

// RecordEventResponse carries the stored entry id
type RecordEventResponse struct {
	EventID string
}

// RecordEventHandler handles the RecordEvent command
type RecordEventHandler struct {
	repo  eventlog.Repository
	clock shared.Clock
}

// NewRecordEventHandler creates a new RecordEventHandler
func NewRecordEventHandler(repo eventlog.Repository, clock shared.Clock) *RecordEventHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RecordEventHandler{repo: repo, clock: clock}
}

// Handle executes the RecordEvent command
func (h *RecordEventHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordEventCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordEventCommand")
	}

	entry := &eventlog.Entry{
		ID:        utils.GenerateEventID(cmd.Kind),
		Timestamp: h.clock.Now().UTC(),
		Kind:      cmd.Kind,
		Commander: cmd.Commander,
		System:    cmd.System,
		Station:   cmd.Station,
		Outcome:   cmd.Outcome,
		Detail:    cmd.Detail,
	}
	if cmd.Payload != nil {
		raw, err := json.Marshal(cmd.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s payload: %w", cmd.Kind, err)
		}
		entry.Payload = raw
	}
	if err := h.repo.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record %s event: %w", cmd.Kind, err)
	}

	return &RecordEventResponse{EventID: entry.ID}, nil
}
