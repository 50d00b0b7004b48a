package notify

import (
	"context"
	"errors"
	"log/slog"
)

// =============================================================================
// MultiNotifier
// =============================================================================

// MultiNotifier fans a workflow event out to multiple channels, so an
// escalation can hit Slack and a webhook in one call.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewMultiNotifier creates a notifier that fans out to multiple notifiers.
// A failing channel is logged and skipped; the remaining channels still run.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		Notifiers: notifiers,
		Logger:    slog.Default(),
	}
}

// Notify implements Notifier. All channels are attempted; failures are
// joined into the returned error.
func (n *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, notifier := range n.Notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
			if n.Logger != nil {
				level := slog.LevelWarn
				if event.Severity == SeverityError || event.Severity == SeverityCritical {
					level = slog.LevelError
				}
				n.Logger.Log(ctx, level, "notifier failed",
					"error", err,
					"type", event.Type,
					"run_id", event.RunID,
					"ticket_id", event.TicketID,
				)
			}
		}
	}
	return errors.Join(errs...)
}

// =============================================================================
// NopNotifier
// =============================================================================

// NopNotifier discards all notifications. Used when no channel is
// configured for a run.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(ctx context.Context, event Event) error {
	return nil
}
