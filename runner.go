package supportflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/supportflow/notify"
	"github.com/randalmurphal/supportflow/transcript"
)

// Result is the caller-facing outcome of one ticket run.
type Result struct {
	TicketID string   `json:"ticketId"`
	Answer   string   `json:"answer"`
	Category Category `json:"category"`

	// Escalated reports whether the ticket was handed to a human queue.
	Escalated bool `json:"escalated"`

	// Attempts is the number of generation attempts that completed.
	Attempts int `json:"attempts"`

	// Debug carries internal run detail. Nil unless IncludeDebug is set.
	Debug *Debug `json:"debug,omitempty"`
}

// Debug exposes internal run state for troubleshooting and tests.
type Debug struct {
	RunID            string `json:"runId"`
	KBMatchID        string `json:"kbMatchId,omitempty"`
	AIGenerated      bool   `json:"aiGenerated"`
	ReviewPassed     bool   `json:"reviewPassed"`
	EscalationReason string `json:"escalationReason,omitempty"`
	EscalationLogged bool   `json:"escalationLogged"`
}

// RunnerConfig configures the run entry point.
type RunnerConfig struct {
	// IncludeDebug attaches internal run state to every Result.
	IncludeDebug bool

	// Logger receives run-level structured logs. Defaults to slog.Default.
	Logger *slog.Logger

	// Notifier receives run lifecycle events. Optional.
	Notifier notify.Notifier

	// Transcripts records the per-run audit trail. Optional. When set here
	// the same manager should be passed to the controller so stage turns
	// land in the run the runner opened.
	Transcripts transcript.Manager
}

// Runner validates incoming tickets, assigns run identity, and drives a
// controller to a packaged Result. It is the intake boundary: everything
// past it operates on sanitized state.
type Runner struct {
	controller  *Controller
	includeDbg  bool
	logger      *slog.Logger
	notifier    notify.Notifier
	transcripts transcript.Manager
}

// NewRunner creates a runner over the given controller.
func NewRunner(controller *Controller, cfg RunnerConfig) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Runner{
		controller:  controller,
		includeDbg:  cfg.IncludeDebug,
		logger:      logger,
		notifier:    notifier,
		transcripts: cfg.Transcripts,
	}
}

// Run processes one ticket end to end.
//
// The only error it returns is input validation (ErrEmptyTicket) or context
// cancellation; collaborator failures degrade into fallback answers or
// escalations and still produce a Result.
func (r *Runner) Run(ctx context.Context, ticket Ticket) (Result, error) {
	if ticket.Subject == "" && ticket.Description == "" {
		return Result{}, ErrEmptyTicket
	}

	state := NewState(ticket).WithRunID(generateRunID())
	started := time.Now()

	r.logger.Info("run started",
		"run_id", state.RunID,
		"ticket_id", state.TicketID,
		"subject", state.Subject)
	r.notify(ctx, notify.EventRunStarted, state,
		fmt.Sprintf("processing ticket %s", state.TicketID), notify.SeverityInfo)

	if r.transcripts != nil {
		if err := r.transcripts.StartRun(state.RunID, transcript.RunMetadata{
			TicketID: state.TicketID,
			Subject:  state.Subject,
		}); err != nil {
			r.logger.Warn("transcript start failed",
				"run_id", state.RunID, "error", err)
		}
	}

	final, err := r.controller.Run(ctx, state)
	if err != nil {
		r.logger.Error("run aborted",
			"run_id", state.RunID, "ticket_id", state.TicketID, "error", err)
		r.endRun(final, transcript.RunStatusFailed)
		r.notify(ctx, notify.EventRunFailed, final, err.Error(), notify.SeverityError)
		return Result{}, err
	}

	elapsed := time.Since(started)
	if final.Escalated {
		r.endRun(final, transcript.RunStatusEscalated)
		r.notify(ctx, notify.EventRunEscalated, final, final.EscalationReason, notify.SeverityWarning)
		r.logger.Info("run escalated",
			"run_id", final.RunID,
			"ticket_id", final.TicketID,
			"reason", final.EscalationReason,
			"attempts", final.Tries,
			"duration", elapsed)
	} else {
		r.endRun(final, transcript.RunStatusResolved)
		r.notify(ctx, notify.EventRunResolved, final,
			fmt.Sprintf("resolved in %d attempt(s)", final.Tries), notify.SeverityInfo)
		r.logger.Info("run resolved",
			"run_id", final.RunID,
			"ticket_id", final.TicketID,
			"attempts", final.Tries,
			"duration", elapsed)
	}

	return r.packageResult(final), nil
}

// packageResult converts final state into the caller-facing result.
func (r *Runner) packageResult(state State) Result {
	res := Result{
		TicketID:  state.TicketID,
		Answer:    state.Answer,
		Category:  state.Category,
		Escalated: state.Escalated,
		Attempts:  state.Tries,
	}
	if r.includeDbg {
		res.Debug = &Debug{
			RunID:            state.RunID,
			KBMatchID:        state.KBMatchID,
			AIGenerated:      state.AIGenerated,
			ReviewPassed:     state.ReviewPassed,
			EscalationReason: state.EscalationReason,
			EscalationLogged: state.EscalationLogged,
		}
	}
	return res
}

func (r *Runner) endRun(state State, status transcript.RunStatus) {
	if r.transcripts == nil {
		return
	}
	if err := r.transcripts.EndRun(state.RunID, status, state.Tries); err != nil {
		r.logger.Warn("transcript end failed",
			"run_id", state.RunID, "error", err)
	}
}

func (r *Runner) notify(ctx context.Context, typ notify.EventType, state State, msg, severity string) {
	_ = r.notifier.Notify(ctx, notify.Event{
		Type:      typ,
		RunID:     state.RunID,
		TicketID:  state.TicketID,
		Category:  string(state.Category),
		Message:   msg,
		Severity:  severity,
		Timestamp: time.Now(),
	})
}
