package eventlog

import "context"

// Filter narrows a listing of the event log
type Filter struct {
	Kind  string // empty matches every kind
	Limit int
}

// Repository stores the routed-event history
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, error)
}
