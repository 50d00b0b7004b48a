package supportflow

import (
	"context"
	"time"
)

// review judges the current answer. Two short circuits run before the
// reviewer is consulted: an empty answer is always sent back for revision,
// and an escalated ticket is auto-approved, since re-reviewing an
// escalation notice could only spin the retry loop pointlessly.
//
// Updates: state.ReviewDecision, state.ReviewPassed
func (c *Controller) review(ctx context.Context, state State) State {
	started := time.Now()

	if !state.HasAnswer() {
		state.ReviewDecision = ReviewRevise
		state.ReviewPassed = false
		c.recordTurn(state, "review", started, "revise: empty answer")
		return state
	}

	if state.Escalated {
		state.ReviewDecision = ReviewApprove
		state.ReviewPassed = true
		c.recordTurn(state, "review", started, "approve: escalated ticket")
		return state
	}

	decision, err := c.collab.Reviewer.Review(ctx, ReviewRequest{
		Subject:     state.Subject,
		Description: state.Description,
		Category:    state.Category,
		Answer:      state.Answer,
	})
	if err != nil {
		// A failed review must never silently approve.
		c.logger.Warn("review failed, requiring revision",
			"run_id", state.RunID, "error", err)
		state.ReviewDecision = ReviewRevise
		state.ReviewPassed = false
		c.recordTurn(state, "review", started, "revise: review error")
		return state
	}

	if decision != ReviewApprove {
		decision = ReviewRevise
	}

	state.ReviewDecision = decision
	state.ReviewPassed = decision == ReviewApprove
	c.logger.Info("review decision",
		"run_id", state.RunID, "decision", string(decision))
	c.recordTurn(state, "review", started, string(decision))
	return state
}
