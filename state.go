package supportflow

import (
	"fmt"
	"strings"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// =============================================================================
// Category
// =============================================================================

// Category is a support ticket category. The set is closed: collaborator
// output is always funneled through ParseCategory before it reaches state.
type Category string

// Support categories.
const (
	CategoryBilling   Category = "Billing"
	CategoryTechnical Category = "Technical"
	CategorySecurity  Category = "Security"
	CategoryGeneral   Category = "General"
)

// Categories returns the closed category set in display order.
func Categories() []Category {
	return []Category{CategoryBilling, CategoryTechnical, CategorySecurity, CategoryGeneral}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryBilling, CategoryTechnical, CategorySecurity, CategoryGeneral:
		return true
	}
	return false
}

// ParseCategory converts raw collaborator output into a Category.
// Unknown or empty input falls back to CategoryGeneral; classifier output
// is never trusted as a variant tag directly.
func ParseCategory(raw string) Category {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories() {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return CategoryGeneral
}

// =============================================================================
// Decisions
// =============================================================================

// ReviewDecision is the verdict produced by the review stage.
type ReviewDecision string

// Review verdicts.
const (
	ReviewApprove ReviewDecision = "approve"
	ReviewRevise  ReviewDecision = "revise"
)

// Outcome is the decision emitted after each review pass: loop back for
// another retrieval/generation attempt, or finish the run.
type Outcome string

// Workflow outcomes.
const (
	OutcomeContinue Outcome = "continue"
	OutcomeEnd      Outcome = "end"
)

// =============================================================================
// Ticket
// =============================================================================

// Ticket is the immutable intake record for one support request.
// The ID is generated once at creation and never changes.
type Ticket struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

// NewTicket creates a ticket with a generated ID. Subject and description
// are stored as given; sanitization happens when state is built.
func NewTicket(subject, description string) Ticket {
	return Ticket{
		ID:          generateTicketID(),
		Subject:     strings.TrimSpace(subject),
		Description: strings.TrimSpace(description),
	}
}

const ticketIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// generateTicketID creates a unique ticket identifier.
func generateTicketID() string {
	suffix, err := nanoid.Generate(ticketIDAlphabet, 8)
	if err != nil {
		// nanoid only fails if the system entropy source does; fall back
		// to a nanosecond timestamp rather than aborting intake.
		suffix = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("TICKET-%s-%s", time.Now().Format("20060102"), suffix)
}

// generateRunID creates a unique run ID for one workflow execution.
func generateRunID() string {
	suffix, err := nanoid.Generate(ticketIDAlphabet, 6)
	if err != nil {
		suffix = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-run-%s", time.Now().Format("2006-01-02"), suffix)
}

// =============================================================================
// State
// =============================================================================

// State is the record threaded through the workflow stages. It is passed by
// value: each stage returns a new State merged over the previous one, so no
// stage ever observes a partially updated record.
type State struct {
	// Identification
	RunID    string `json:"runId"`
	TicketID string `json:"ticketId"`

	// Sanitized ticket content
	Subject     string `json:"subject"`
	Description string `json:"description"`

	// Classification
	Category Category `json:"category,omitempty"`

	// Retrieval and generation. Answer is the only field written by both
	// stages; last writer wins.
	Answer      string `json:"answer,omitempty"`
	KBMatchID   string `json:"kbMatchId,omitempty"`
	AIGenerated bool   `json:"aiGenerated,omitempty"`

	// Tries counts generation attempts. It is bumped exactly once per
	// successful generation call and never decreases.
	Tries int `json:"tries"`

	// Escalation. Escalated is monotonic for the lifetime of a run.
	Escalated        bool   `json:"escalated"`
	EscalationReason string `json:"escalationReason,omitempty"`
	EscalationLogged bool   `json:"escalationLogged,omitempty"`

	// Latest review verdict; overwritten each pass.
	ReviewDecision ReviewDecision `json:"reviewDecision,omitempty"`
	ReviewPassed   bool           `json:"reviewPassed,omitempty"`
}

// NewState builds the initial state for a ticket. Subject and description
// are sanitized here, before any collaborator sees them.
func NewState(t Ticket) State {
	return State{
		RunID:       generateRunID(),
		TicketID:    t.ID,
		Subject:     Sanitize(t.Subject),
		Description: Sanitize(t.Description),
	}
}

// WithRunID sets a custom run ID.
func (s State) WithRunID(runID string) State {
	s.RunID = runID
	return s
}

// WithCategory sets the ticket category.
func (s State) WithCategory(c Category) State {
	s.Category = c
	return s
}

// Escalate marks the state escalated with the given reason. Escalation is
// monotonic: once set it is never cleared, and a later Escalate call keeps
// the original reason.
func (s State) Escalate(reason string) State {
	if s.Escalated {
		return s
	}
	s.Escalated = true
	s.EscalationReason = reason
	return s
}

// HasAnswer reports whether the state carries a non-blank answer.
func (s State) HasAnswer() bool {
	return strings.TrimSpace(s.Answer) != ""
}

// Summary returns a human-readable one-line summary of the state.
func (s State) Summary() string {
	status := "resolved"
	switch {
	case s.Escalated:
		status = "escalated"
	case !s.ReviewPassed:
		status = "pending"
	}
	return fmt.Sprintf("Ticket %s [%s]: category=%s tries=%d",
		s.TicketID, status, s.Category, s.Tries)
}
