package supportflow

import "context"

// =============================================================================
// Collaborator Contracts
// =============================================================================
// Each pipeline stage talks to an external service through one of these
// narrow interfaces. Implementations must be safe for concurrent use: one
// collaborator set is shared by every run in flight.

// Classifier assigns a ticket to a category.
//
// Implementations should return a member of the closed category set; the
// classify stage funnels whatever comes back through ParseCategory and
// recovers from errors by falling back to CategoryGeneral, so a failing
// classifier can never abort a run.
type Classifier interface {
	Classify(ctx context.Context, subject, description string) (Category, error)
}

// Retrieval is the result of one knowledge-base lookup.
type Retrieval struct {
	// Answer is the candidate answer text, or the retriever's fixed
	// fallback message when nothing cleared the similarity threshold.
	Answer string

	// MatchID identifies the knowledge-base entry the answer came from.
	// Empty when the lookup fell back.
	MatchID string

	// MatchCategory is the category of the matched entry, if any.
	MatchCategory Category
}

// Retriever searches a knowledge base for a candidate answer.
//
// A miss is not an error: implementations return their fallback message with
// an empty MatchID. Errors are recovered by the retrieve stage and treated
// as a miss.
type Retriever interface {
	Retrieve(ctx context.Context, description string, hint Category) (Retrieval, error)
}

// GenerationRequest carries the ticket context handed to a Generator.
type GenerationRequest struct {
	Subject     string
	Description string
	Category    Category

	// PriorAnswer is the current answer, usually the retrieval result or
	// fallback. Generators may enhance or replace it.
	PriorAnswer string
}

// Generator produces a replacement answer for the ticket.
//
// The generate stage handles the escalation pre-check, attempt counting, and
// degenerate-output detection; implementations only produce text.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// ReviewRequest carries the answer and its context to a Reviewer.
type ReviewRequest struct {
	Subject     string
	Description string
	Category    Category
	Answer      string
}

// Reviewer judges whether an answer is fit to send to the customer.
//
// The review stage short-circuits escalated tickets and empty answers before
// the reviewer is consulted, and converts reviewer errors into ReviewRevise.
type Reviewer interface {
	Review(ctx context.Context, req ReviewRequest) (ReviewDecision, error)
}
