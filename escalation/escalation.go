package escalation

import (
	"context"
	"time"
)

// Record is one escalation event. One record is appended per escalated run.
type Record struct {
	Timestamp   time.Time `json:"timestamp"`
	TicketID    string    `json:"ticket_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Reason      string    `json:"escalation_reason"`
}

// Sink is an append-only destination for escalation records.
//
// Implementations must be safe for concurrent use and must make each append
// atomic: a reader of the underlying destination never observes a partial
// record, even with multiple runs escalating at once.
type Sink interface {
	Append(ctx context.Context, rec Record) error
}
