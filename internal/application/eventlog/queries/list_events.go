package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andrescamacho/architect-tracker/internal/application/mediator"
	"github.com/andrescamacho/architect-tracker/internal/domain/eventlog"
)

const defaultEventLimit = 50

// ListEventsQuery lists the most recent routed notifications
type ListEventsQuery struct {
	Kind  string
	Limit int
}

// EventDTO is one event log line
type EventDTO struct {
	ID        string          `json:"id" yaml:"id"`
	Timestamp time.Time       `json:"timestamp" yaml:"timestamp"`
	Kind      string          `json:"kind" yaml:"kind"`
	Commander string          `json:"commander,omitempty" yaml:"commander,omitempty"`
	System    string          `json:"system,omitempty" yaml:"system,omitempty"`
	Station   string          `json:"station,omitempty" yaml:"station,omitempty"`
	Outcome   string          `json:"outcome" yaml:"outcome"`
	Detail    string          `json:"detail,omitempty" yaml:"detail,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty" yaml:"-"`
}

// ListEventsResponse holds events newest first
type ListEventsResponse struct {
	Events []EventDTO `json:"events" yaml:"events"`
}

// ListEventsHandler handles the ListEvents query
type ListEventsHandler struct {
	repo eventlog.Repository
}

// NewListEventsHandler creates a new ListEventsHandler
func NewListEventsHandler(repo eventlog.Repository) *ListEventsHandler {
	return &ListEventsHandler{repo: repo}
}

// Handle executes the ListEvents query
func (h *ListEventsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListEventsQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListEventsQuery")
	}

	limit := query.Limit
	if limit <= 0 {
		limit = defaultEventLimit
	}

	entries, err := h.repo.List(ctx, eventlog.Filter{Kind: query.Kind, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	response := &ListEventsResponse{Events: make([]EventDTO, 0, len(entries))}
	for _, e := range entries {
		response.Events = append(response.Events, EventDTO{
			ID:        e.ID,
			Timestamp: e.Timestamp,
			Kind:      e.Kind,
			Commander: e.Commander,
			System:    e.System,
			Station:   e.Station,
			Outcome:   string(e.Outcome),
			Detail:    e.Detail,
			Payload:   e.Payload,
		})
	}
	return response, nil
}
