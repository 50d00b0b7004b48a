package transcript

import (
	"errors"
	"time"
)

// Transcript errors
var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrRunNotStarted    = errors.New("run not started")
)

// RunStatus indicates the status of a run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusResolved  RunStatus = "resolved"
	RunStatusEscalated RunStatus = "escalated"
	RunStatusFailed    RunStatus = "failed"
)

// Transcript is the complete audit record of one workflow run.
type Transcript struct {
	RunID    string `json:"runId"`
	Metadata Meta   `json:"metadata"`
	Turns    []Turn `json:"turns"`
}

// Meta contains run metadata.
type Meta struct {
	RunID     string    `json:"runId,omitempty"`
	TicketID  string    `json:"ticketId"`
	Subject   string    `json:"subject,omitempty"`
	StartedAt time.Time `json:"startedAt"`
	EndedAt   time.Time `json:"endedAt,omitempty"`
	Status    RunStatus `json:"status"`
	TurnCount int       `json:"turnCount"`
	Attempts  int       `json:"attempts,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Turn is one stage execution within a run.
type Turn struct {
	ID         int       `json:"id"`
	Stage      string    `json:"stage"` // classify, retrieve, generate, review, decide
	Attempt    int       `json:"attempt,omitempty"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMs int64     `json:"durationMs,omitempty"`
}

// RunMetadata is input for starting a new run.
type RunMetadata struct {
	TicketID string
	Subject  string
}

// Manager is the interface for transcript operations.
type Manager interface {
	// Lifecycle
	StartRun(runID string, metadata RunMetadata) error
	RecordTurn(runID string, turn Turn) error
	EndRun(runID string, status RunStatus, attempts int) error

	// Retrieval
	Load(runID string) (*Transcript, error)
	LoadMetadata(runID string) (*Meta, error)
	List(filter ListFilter) ([]Meta, error)
}

// ListFilter filters transcript listing.
type ListFilter struct {
	Status RunStatus
	After  time.Time
	Before time.Time
	Limit  int
}

// NewTranscript creates a new running transcript.
func NewTranscript(runID string, meta RunMetadata) *Transcript {
	return &Transcript{
		RunID: runID,
		Metadata: Meta{
			RunID:     runID,
			TicketID:  meta.TicketID,
			Subject:   meta.Subject,
			StartedAt: time.Now(),
			Status:    RunStatusRunning,
		},
		Turns: make([]Turn, 0),
	}
}

// AddTurn appends a turn, assigning its sequence ID.
func (t *Transcript) AddTurn(turn Turn) *Turn {
	turn.ID = len(t.Turns) + 1
	if turn.Timestamp.IsZero() {
		turn.Timestamp = time.Now()
	}
	t.Turns = append(t.Turns, turn)
	t.Metadata.TurnCount = len(t.Turns)
	return &t.Turns[len(t.Turns)-1]
}

// Duration returns the wall-clock duration of the run so far.
func (t *Transcript) Duration() time.Duration {
	if t.Metadata.EndedAt.IsZero() {
		return time.Since(t.Metadata.StartedAt)
	}
	return t.Metadata.EndedAt.Sub(t.Metadata.StartedAt)
}
