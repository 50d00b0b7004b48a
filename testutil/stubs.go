package testutil

import (
	"context"
	"sync"

	"github.com/randalmurphal/supportflow"
	"github.com/randalmurphal/supportflow/escalation"
)

// StubClassifier returns a fixed category or error.
type StubClassifier struct {
	Category supportflow.Category
	Err      error

	mu    sync.Mutex
	calls int
}

func (s *StubClassifier) Classify(ctx context.Context, subject, description string) (supportflow.Category, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.Err != nil {
		return supportflow.CategoryGeneral, s.Err
	}
	return s.Category, nil
}

// Calls returns how many times Classify ran.
func (s *StubClassifier) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// StubRetriever returns a fixed retrieval or error.
type StubRetriever struct {
	Result supportflow.Retrieval
	Err    error

	mu    sync.Mutex
	calls int
}

func (s *StubRetriever) Retrieve(ctx context.Context, description string, hint supportflow.Category) (supportflow.Retrieval, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.Err != nil {
		return supportflow.Retrieval{}, s.Err
	}
	return s.Result, nil
}

// Calls returns how many times Retrieve ran.
func (s *StubRetriever) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// ScriptedGenerator replays a fixed sequence of responses. The last
// response repeats once the script is exhausted. A non-nil Err fails
// every call instead.
type ScriptedGenerator struct {
	Responses []string
	Err       error

	mu    sync.Mutex
	calls int
}

func (g *ScriptedGenerator) Generate(ctx context.Context, req supportflow.GenerationRequest) (string, error) {
	g.mu.Lock()
	idx := g.calls
	g.calls++
	g.mu.Unlock()

	if g.Err != nil {
		return "", g.Err
	}
	if len(g.Responses) == 0 {
		return "", nil
	}
	if idx >= len(g.Responses) {
		idx = len(g.Responses) - 1
	}
	return g.Responses[idx], nil
}

// Calls returns how many times Generate ran.
func (g *ScriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// ScriptedReviewer replays a fixed sequence of decisions, repeating the
// last one once exhausted.
type ScriptedReviewer struct {
	Decisions []supportflow.ReviewDecision
	Err       error

	mu    sync.Mutex
	calls int
}

func (r *ScriptedReviewer) Review(ctx context.Context, req supportflow.ReviewRequest) (supportflow.ReviewDecision, error) {
	r.mu.Lock()
	idx := r.calls
	r.calls++
	r.mu.Unlock()

	if r.Err != nil {
		return supportflow.ReviewRevise, r.Err
	}
	if len(r.Decisions) == 0 {
		return supportflow.ReviewRevise, nil
	}
	if idx >= len(r.Decisions) {
		idx = len(r.Decisions) - 1
	}
	return r.Decisions[idx], nil
}

// Calls returns how many times Review ran.
func (r *ScriptedReviewer) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// FailingSink fails every append with the configured error.
type FailingSink struct {
	Err error
}

func (s *FailingSink) Append(ctx context.Context, rec escalation.Record) error {
	return s.Err
}

// Approve returns a reviewer that approves everything.
func Approve() *ScriptedReviewer {
	return &ScriptedReviewer{Decisions: []supportflow.ReviewDecision{supportflow.ReviewApprove}}
}

// Revise returns a reviewer that rejects everything.
func Revise() *ScriptedReviewer {
	return &ScriptedReviewer{Decisions: []supportflow.ReviewDecision{supportflow.ReviewRevise}}
}
