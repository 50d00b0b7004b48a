package supportflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/supportflow/escalation"
	"github.com/randalmurphal/supportflow/notify"
	"github.com/randalmurphal/supportflow/transcript"
)

// DefaultMaxRetryAttempts bounds generation attempts per ticket.
const DefaultMaxRetryAttempts = 2

// maxAttemptsNotice is the customer-facing answer set when the retry ceiling
// forces an escalation.
const maxAttemptsNotice = "We apologize for the delay in resolving your issue. " +
	"Your ticket has been escalated to our specialized support team " +
	"who will contact you within 24 hours with a resolution."

// Collaborators bundles the external services one controller drives. All of
// them are required except Sink, which may be nil when escalations need no
// durable record (tests, dry runs).
type Collaborators struct {
	Classifier Classifier
	Retriever  Retriever
	Generator  Generator
	Reviewer   Reviewer
	Sink       escalation.Sink
}

// ControllerConfig configures controller behavior.
type ControllerConfig struct {
	// MaxRetryAttempts is the generation attempt ceiling (default 2).
	MaxRetryAttempts int

	// Logger receives stage-level structured logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Notifier receives operational events (sink write failures). Optional.
	Notifier notify.Notifier

	// Transcripts records the per-stage audit trail. Optional.
	Transcripts transcript.Manager
}

// Controller drives one ticket through the fixed stage sequence
// classify, retrieve, generate, review, decide, applying the retry and
// escalation policy. It holds no per-run mutable state, so a single
// controller may process any number of tickets concurrently as long as its
// collaborators tolerate concurrent calls.
type Controller struct {
	collab      Collaborators
	maxAttempts int
	logger      *slog.Logger
	notifier    notify.Notifier
	transcripts transcript.Manager
}

// NewController creates a controller over the given collaborators.
func NewController(collab Collaborators, cfg ControllerConfig) *Controller {
	maxAttempts := cfg.MaxRetryAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxRetryAttempts
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Controller{
		collab:      collab,
		maxAttempts: maxAttempts,
		logger:      logger,
		notifier:    notifier,
		transcripts: cfg.Transcripts,
	}
}

// MaxRetryAttempts returns the configured generation ceiling.
func (c *Controller) MaxRetryAttempts() int {
	return c.maxAttempts
}

// Run executes the workflow for one ticket state to completion.
//
// Classification happens exactly once; retrieval, generation, and review
// repeat until Decide emits OutcomeEnd. The loop is doubly bounded: Decide
// forces an escalation once Tries reaches the ceiling, and the loop itself
// never exceeds MaxRetryAttempts+1 passes even if a stage misbehaves.
func (c *Controller) Run(ctx context.Context, state State) (State, error) {
	if err := ctx.Err(); err != nil {
		return state, err
	}

	state = c.classify(ctx, state)

	for pass := 0; pass <= c.maxAttempts; pass++ {
		state = c.retrieve(ctx, state)
		state = c.generate(ctx, state)
		state = c.review(ctx, state)

		var outcome Outcome
		state, outcome = c.decide(ctx, state)
		if outcome == OutcomeEnd {
			return state, nil
		}
	}

	// Unreachable when collaborators honor their contracts: Tries grows on
	// every continued pass, so Decide ends the run first. Kept as the hard
	// stop the termination guarantee promises.
	c.logger.Error("iteration cap reached without a decision",
		"run_id", state.RunID, "ticket_id", state.TicketID, "tries", state.Tries)
	state = state.Escalate(fmt.Sprintf("Maximum processing attempts (%d) exceeded", c.maxAttempts))
	state.Answer = maxAttemptsNotice
	state = c.recordEscalation(ctx, state)
	return state, nil
}

// decide evaluates the continue/end policy after each review pass.
//
// Priority order: an escalated ticket ends immediately with a durable
// record; an approved answer ends as resolved; a ticket at the attempt
// ceiling is force-escalated; anything else loops back to retrieval.
func (c *Controller) decide(ctx context.Context, state State) (State, Outcome) {
	started := time.Now()
	defer func() {
		c.recordTurn(state, "decide", started, fmt.Sprintf(
			"tries=%d/%d review_passed=%t escalated=%t",
			state.Tries, c.maxAttempts, state.ReviewPassed, state.Escalated))
	}()

	c.logger.Info("workflow decision",
		"run_id", state.RunID,
		"tries", state.Tries,
		"max_tries", c.maxAttempts,
		"review_passed", state.ReviewPassed,
		"escalated", state.Escalated)

	if state.Escalated {
		state = c.recordEscalation(ctx, state)
		return state, OutcomeEnd
	}

	if state.ReviewPassed || state.ReviewDecision == ReviewApprove {
		return state, OutcomeEnd
	}

	if state.Tries >= c.maxAttempts {
		state = state.Escalate(fmt.Sprintf("Maximum processing attempts (%d) exceeded", c.maxAttempts))
		state.Answer = maxAttemptsNotice
		state.AIGenerated = false
		state = c.recordEscalation(ctx, state)
		return state, OutcomeEnd
	}

	return state, OutcomeContinue
}

// recordEscalation appends the escalation record to the sink. A sink failure
// is reported through the logger and notifier but never changes the outcome:
// the customer still gets the escalation answer even if the audit write was
// lost.
func (c *Controller) recordEscalation(ctx context.Context, state State) State {
	if state.EscalationLogged || c.collab.Sink == nil {
		return state
	}

	rec := escalation.Record{
		Timestamp:   time.Now(),
		TicketID:    state.TicketID,
		Subject:     state.Subject,
		Description: state.Description,
		Category:    string(state.Category),
		Reason:      state.EscalationReason,
	}

	if err := c.collab.Sink.Append(ctx, rec); err != nil {
		c.logger.Error("escalation record write failed",
			"run_id", state.RunID,
			"ticket_id", state.TicketID,
			"error", err)
		c.notifier.Notify(ctx, notify.Event{
			Type:      notify.EventSinkWriteFailed,
			RunID:     state.RunID,
			TicketID:  state.TicketID,
			Category:  string(state.Category),
			Message:   fmt.Sprintf("escalation record for %s was not persisted: %v", state.TicketID, err),
			Severity:  notify.SeverityError,
			Timestamp: time.Now(),
		})
		return state
	}

	state.EscalationLogged = true
	c.logger.Info("ticket escalated",
		"run_id", state.RunID,
		"ticket_id", state.TicketID,
		"reason", state.EscalationReason)
	return state
}

// recordTurn writes one stage execution to the transcript, if configured.
func (c *Controller) recordTurn(state State, stage string, started time.Time, content string) {
	if c.transcripts == nil {
		return
	}
	err := c.transcripts.RecordTurn(state.RunID, transcript.Turn{
		Stage:      stage,
		Attempt:    state.Tries,
		Content:    content,
		Timestamp:  time.Now(),
		DurationMs: time.Since(started).Milliseconds(),
	})
	if err != nil {
		c.logger.Warn("transcript turn not recorded",
			"run_id", state.RunID, "stage", stage, "error", err)
	}
}
