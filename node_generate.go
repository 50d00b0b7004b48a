package supportflow

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// escalationNotice is the fixed answer for tickets the pre-check routes
// straight to a human.
const escalationNotice = "Thank you for contacting us. Your inquiry requires specialized attention " +
	"from our support team. We've escalated your ticket and a human agent will " +
	"contact you within 24 hours. For urgent matters, please call our support " +
	"hotline at 1-800-SUPPORT."

// generationFailureNotice is the fixed answer when the generation call
// fails or produces a degenerate result.
const generationFailureNotice = "We apologize for the inconvenience. We're experiencing technical difficulties " +
	"generating a response for your inquiry. A human support agent will review " +
	"your request and respond within 4-6 hours. Thank you for your patience."

// minGeneratedLength rejects degenerate generator output.
const minGeneratedLength = 20

// handoffPhrases in an answer signal the ticket already needs a human.
var handoffPhrases = []string{
	"escalate", "human agent", "specialist", "manager",
	"cannot help", "unable to resolve", "complex issue",
}

// generate produces a replacement answer. A pre-check routes tickets that
// are already beyond saving to escalation without spending a generation
// call. Tries increments exactly once per successful generation, never for
// the pre-check or failure paths, which both end the run via escalation.
//
// Updates: state.Answer, state.AIGenerated, state.Tries, state.Escalated,
// state.EscalationReason
func (c *Controller) generate(ctx context.Context, state State) State {
	started := time.Now()

	if needed, reason := c.escalationNeeded(state); needed {
		c.logger.Info("escalation pre-check triggered",
			"run_id", state.RunID, "reason", reason)
		state = state.Escalate(reason)
		state.Answer = escalationNotice
		state.AIGenerated = false
		c.recordTurn(state, "generate", started, "pre-check escalation: "+reason)
		return state
	}

	answer, err := c.collab.Generator.Generate(ctx, GenerationRequest{
		Subject:     state.Subject,
		Description: state.Description,
		Category:    state.Category,
		PriorAnswer: state.Answer,
	})
	if err != nil {
		c.logger.Error("generation failed",
			"run_id", state.RunID, "error", err)
		return c.generationFailure(state, started)
	}

	answer = strings.TrimSpace(answer)
	if len(answer) < minGeneratedLength {
		c.logger.Warn("generated answer too short",
			"run_id", state.RunID, "length", len(answer))
		return c.generationFailure(state, started)
	}

	state.Answer = answer
	state.AIGenerated = true
	state.Tries++
	c.logger.Info("answer generated",
		"run_id", state.RunID, "tries", state.Tries)
	c.recordTurn(state, "generate", started, answer)
	return state
}

// escalationNeeded is the pre-check run before every generation call.
func (c *Controller) escalationNeeded(state State) (bool, string) {
	if state.Tries >= c.maxAttempts {
		return true, fmt.Sprintf("Maximum retry attempts (%d) exceeded", c.maxAttempts)
	}

	if !state.HasAnswer() {
		return true, "No suitable answer could be generated"
	}

	answer := strings.ToLower(state.Answer)
	for _, phrase := range handoffPhrases {
		if strings.Contains(answer, phrase) {
			return true, "Agent recommended human escalation"
		}
	}

	return false, ""
}

// generationFailure converts any generation failure into an escalated but
// valid state. Generation failure is always escalated, never retried past
// the loop's own ceiling.
func (c *Controller) generationFailure(state State, started time.Time) State {
	state = state.Escalate("Response generation failure")
	state.Answer = generationFailureNotice
	state.AIGenerated = false
	c.recordTurn(state, "generate", started, "generation failure")
	return state
}
