package supportflow

import (
	"context"
	"time"
)

// RetrievalFallbackMessage is the fixed answer used when no knowledge-base
// entry clears the similarity threshold, or when retrieval itself fails.
// It is not an escalation, only a signal that generation has more to do.
const RetrievalFallbackMessage = "I couldn't find a specific solution for your issue in our knowledge base. " +
	"Our support team will review your request and get back to you soon. " +
	"For urgent matters, please contact support@example.com."

// retrieve searches the knowledge base for a candidate answer. It runs once
// per pass: the retry back-edge re-enters here, not at classification.
//
// Updates: state.Answer, state.KBMatchID, state.AIGenerated
func (c *Controller) retrieve(ctx context.Context, state State) State {
	started := time.Now()

	result, err := c.collab.Retriever.Retrieve(ctx, state.Description, state.Category)
	if err != nil {
		c.logger.Warn("retrieval failed, using fallback answer",
			"run_id", state.RunID, "error", err)
		state.Answer = RetrievalFallbackMessage
		state.KBMatchID = ""
		state.AIGenerated = false
		c.recordTurn(state, "retrieve", started, "fallback: retrieval error")
		return state
	}

	state.Answer = result.Answer
	state.KBMatchID = result.MatchID
	state.AIGenerated = false
	if state.Answer == "" {
		state.Answer = RetrievalFallbackMessage
		state.KBMatchID = ""
	}

	if state.KBMatchID != "" {
		c.logger.Info("knowledge base match",
			"run_id", state.RunID, "match_id", state.KBMatchID)
		c.recordTurn(state, "retrieve", started, "match: "+state.KBMatchID)
	} else {
		c.recordTurn(state, "retrieve", started, "fallback: no match")
	}
	return state
}
