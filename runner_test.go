package supportflow_test

import (
	"context"
	"testing"

	"github.com/randalmurphal/supportflow"
	"github.com/randalmurphal/supportflow/testutil"
)

func newRunner(collab supportflow.Collaborators, includeDebug bool) *supportflow.Runner {
	controller := newController(collab)
	return supportflow.NewRunner(controller, supportflow.RunnerConfig{
		IncludeDebug: includeDebug,
		Logger:       quietLogger(),
	})
}

func happyCollaborators() supportflow.Collaborators {
	return supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryBilling},
		Retriever:  &testutil.StubRetriever{Result: supportflow.Retrieval{Answer: "kb answer", MatchID: "billing_001"}},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:   testutil.Approve(),
	}
}

func TestRunner_EmptyTicketRejected(t *testing.T) {
	runner := newRunner(happyCollaborators(), false)

	_, err := runner.Run(context.Background(), supportflow.Ticket{})
	if err == nil {
		t.Fatal("expected error for empty ticket")
	}
	if !supportflow.IsInputError(err) {
		t.Errorf("IsInputError(%v) = false, want true", err)
	}
}

func TestRunner_SubjectOnlyAccepted(t *testing.T) {
	runner := newRunner(happyCollaborators(), false)

	result, err := runner.Run(context.Background(), supportflow.NewTicket("Billing problem", ""))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if result.Escalated {
		t.Error("Escalated = true, want false")
	}
}

func TestRunner_PackagesResult(t *testing.T) {
	runner := newRunner(happyCollaborators(), false)
	ticket := supportflow.NewTicket("Charged twice", "I was charged twice")

	result, err := runner.Run(context.Background(), ticket)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.TicketID != ticket.ID {
		t.Errorf("TicketID = %q, want %q", result.TicketID, ticket.ID)
	}
	if result.Answer != longAnswer {
		t.Errorf("Answer = %q, want generated answer", result.Answer)
	}
	if result.Category != supportflow.CategoryBilling {
		t.Errorf("Category = %q, want Billing", result.Category)
	}
	if result.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", result.Attempts)
	}
	if result.Debug != nil {
		t.Error("Debug should be nil when IncludeDebug is off")
	}
}

func TestRunner_DebugOutput(t *testing.T) {
	runner := newRunner(happyCollaborators(), true)

	result, err := runner.Run(context.Background(), supportflow.NewTicket("Charged twice", "I was charged twice"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Debug == nil {
		t.Fatal("Debug = nil, want populated")
	}
	if result.Debug.KBMatchID != "billing_001" {
		t.Errorf("Debug.KBMatchID = %q, want billing_001", result.Debug.KBMatchID)
	}
	if !result.Debug.AIGenerated {
		t.Error("Debug.AIGenerated = false, want true")
	}
	if !result.Debug.ReviewPassed {
		t.Error("Debug.ReviewPassed = false, want true")
	}
	if result.Debug.RunID == "" {
		t.Error("Debug.RunID is empty")
	}
}

func TestRunner_EscalatedResult(t *testing.T) {
	collab := happyCollaborators()
	collab.Reviewer = testutil.Revise()
	runner := newRunner(collab, true)

	result, err := runner.Run(context.Background(), supportflow.NewTicket("Hard one", "Nobody can answer this"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !result.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if result.Attempts != supportflow.DefaultMaxRetryAttempts {
		t.Errorf("Attempts = %d, want %d", result.Attempts, supportflow.DefaultMaxRetryAttempts)
	}
	if result.Debug.EscalationReason == "" {
		t.Error("Debug.EscalationReason is empty")
	}
}
