package supportflow

import (
	"context"
	"time"
)

// classify assigns the ticket category. It runs exactly once per ticket;
// the retry loop never revisits it.
//
// Updates: state.Category
func (c *Controller) classify(ctx context.Context, state State) State {
	started := time.Now()

	if state.Subject == "" && state.Description == "" {
		// Nothing to classify; the run entry point rejects fully empty
		// tickets, so this only happens when sanitization emptied both.
		state.Category = CategoryGeneral
		c.recordTurn(state, "classify", started, string(state.Category))
		return state
	}

	category, err := c.collab.Classifier.Classify(ctx, state.Subject, state.Description)
	if err != nil {
		c.logger.Warn("classification failed, defaulting to General",
			"run_id", state.RunID, "error", err)
		state.Category = CategoryGeneral
		c.recordTurn(state, "classify", started, string(state.Category))
		return state
	}

	// Collaborator output is untrusted; out-of-set labels collapse to
	// General instead of leaking into state.
	if !category.Valid() {
		c.logger.Warn("classifier returned unknown category",
			"run_id", state.RunID, "category", string(category))
		category = CategoryGeneral
	}

	state.Category = category
	c.logger.Info("ticket classified",
		"run_id", state.RunID, "category", string(category))
	c.recordTurn(state, "classify", started, string(category))
	return state
}
