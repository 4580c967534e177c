package eventlog

import (
	"encoding/json"
	"time"
)

// Outcome of routing one notification
type Outcome string

const (
	OutcomeApplied   Outcome = "APPLIED"   // store mutated
	OutcomeRefreshed Outcome = "REFRESHED" // display refresh only
	OutcomeIgnored   Outcome = "IGNORED"
	OutcomeFailed    Outcome = "FAILED"
)

// Entry records one notification handled by the router
type Entry struct {
	ID        string
	Timestamp time.Time
	Kind      string
	Commander string
	System    string
	Station   string
	Outcome   Outcome
	Detail    string
	// Payload is the raw notification, kept for inspection
	Payload json.RawMessage
}
