package supportflow

import (
	"errors"
	"strings"
)

// Input validation errors. These are the only errors the run entry point
// surfaces to callers; stage-level collaborator failures are recovered
// internally and converted into degraded state transitions.
var (
	// ErrEmptyTicket indicates both subject and description were empty.
	ErrEmptyTicket = errors.New("ticket subject and description are both empty")
)

// Collaborator failure sentinels. Collaborator implementations may wrap
// these so callers inspecting logs or debug output can tell stages apart;
// the controller recovers from all of them.
var (
	// ErrClassification indicates the classification call failed.
	ErrClassification = errors.New("classification failed")

	// ErrRetrieval indicates the knowledge-base search failed.
	ErrRetrieval = errors.New("retrieval failed")

	// ErrGeneration indicates the generation call failed or produced a
	// degenerate result.
	ErrGeneration = errors.New("generation failed")

	// ErrReview indicates the review call failed.
	ErrReview = errors.New("review failed")
)

// IsInputError checks whether an error is an input validation failure that
// callers of the run entry point must handle.
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrEmptyTicket) {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "empty") && strings.Contains(errStr, "ticket")
}
