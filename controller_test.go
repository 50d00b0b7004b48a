package supportflow_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/randalmurphal/supportflow"
	"github.com/randalmurphal/supportflow/escalation"
	"github.com/randalmurphal/supportflow/testutil"
)

const longAnswer = "Here is a detailed answer that comfortably clears the minimum length check."

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newController(collab supportflow.Collaborators) *supportflow.Controller {
	return supportflow.NewController(collab, supportflow.ControllerConfig{
		Logger: quietLogger(),
	})
}

func newState(subject, description string) supportflow.State {
	return supportflow.NewState(supportflow.NewTicket(subject, description))
}

func TestRun_ResolvesOnFirstApproval(t *testing.T) {
	sink := escalation.NewMemory()
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryBilling},
		Retriever:  &testutil.StubRetriever{Result: supportflow.Retrieval{Answer: "kb answer", MatchID: "billing_001"}},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:   testutil.Approve(),
		Sink:       sink,
	})

	final, err := controller.Run(context.Background(), newState("Charged twice", "I was charged twice"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if final.Escalated {
		t.Error("Escalated = true, want false")
	}
	if final.Tries != 1 {
		t.Errorf("Tries = %d, want 1", final.Tries)
	}
	if final.Answer != longAnswer {
		t.Errorf("Answer = %q, want generated answer", final.Answer)
	}
	if !final.ReviewPassed {
		t.Error("ReviewPassed = false, want true")
	}
	if final.Category != supportflow.CategoryBilling {
		t.Errorf("Category = %q, want Billing", final.Category)
	}
	if sink.Len() != 0 {
		t.Errorf("sink has %d records, want 0", sink.Len())
	}
}

func TestRun_PersistentReviseEscalatesAtCeiling(t *testing.T) {
	sink := escalation.NewMemory()
	classifier := &testutil.StubClassifier{Category: supportflow.CategoryGeneral}
	generator := &testutil.ScriptedGenerator{Responses: []string{longAnswer}}
	controller := newController(supportflow.Collaborators{
		Classifier: classifier,
		Retriever:  &testutil.StubRetriever{},
		Generator:  generator,
		Reviewer:   testutil.Revise(),
		Sink:       sink,
	})

	final, err := controller.Run(context.Background(), newState("Odd question", "Something nobody can answer"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.Tries != supportflow.DefaultMaxRetryAttempts {
		t.Errorf("Tries = %d, want %d", final.Tries, supportflow.DefaultMaxRetryAttempts)
	}
	if !strings.Contains(final.EscalationReason, "2") {
		t.Errorf("EscalationReason = %q, should mention the ceiling", final.EscalationReason)
	}
	if !strings.Contains(final.Answer, "escalated to our specialized support team") {
		t.Errorf("Answer = %q, want the escalation notice", final.Answer)
	}
	if !final.EscalationLogged {
		t.Error("EscalationLogged = false, want true")
	}

	// Classification runs once; generation once per pass.
	if classifier.Calls() != 1 {
		t.Errorf("classifier calls = %d, want 1", classifier.Calls())
	}
	if generator.Calls() != 2 {
		t.Errorf("generator calls = %d, want 2", generator.Calls())
	}

	if sink.Len() != 1 {
		t.Fatalf("sink has %d records, want 1", sink.Len())
	}
	rec := sink.Records()[0]
	if rec.TicketID != final.TicketID {
		t.Errorf("record TicketID = %q, want %q", rec.TicketID, final.TicketID)
	}
	if !strings.Contains(rec.Reason, "Maximum processing attempts") {
		t.Errorf("record Reason = %q", rec.Reason)
	}
}

func TestRun_ClassifierErrorDefaultsToGeneral(t *testing.T) {
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Err: errors.New("model offline")},
		Retriever:  &testutil.StubRetriever{},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:   testutil.Approve(),
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if final.Category != supportflow.CategoryGeneral {
		t.Errorf("Category = %q, want General", final.Category)
	}
	if final.Escalated {
		t.Error("classifier failure should not escalate the run")
	}
}

func TestRun_RetrieverErrorUsesFallback(t *testing.T) {
	generator := &testutil.ScriptedGenerator{Responses: []string{longAnswer}}
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryTechnical},
		Retriever:  &testutil.StubRetriever{Err: errors.New("index unavailable")},
		Generator:  generator,
		Reviewer:   testutil.Approve(),
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if final.Escalated {
		t.Error("retrieval failure should degrade, not escalate")
	}
	if final.KBMatchID != "" {
		t.Errorf("KBMatchID = %q, want empty", final.KBMatchID)
	}
	if final.Tries != 1 {
		t.Errorf("Tries = %d, want 1", final.Tries)
	}
}

func TestRun_GeneratorErrorEscalatesWithoutAttempt(t *testing.T) {
	sink := escalation.NewMemory()
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever:  &testutil.StubRetriever{},
		Generator:  &testutil.ScriptedGenerator{Err: errors.New("model offline")},
		Reviewer:   testutil.Approve(),
		Sink:       sink,
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.Tries != 0 {
		t.Errorf("Tries = %d, want 0: failed generations are not attempts", final.Tries)
	}
	if final.EscalationReason != "Response generation failure" {
		t.Errorf("EscalationReason = %q", final.EscalationReason)
	}
	if !strings.Contains(final.Answer, "technical difficulties") {
		t.Errorf("Answer = %q, want generation failure notice", final.Answer)
	}
	if sink.Len() != 1 {
		t.Errorf("sink has %d records, want 1", sink.Len())
	}
}

func TestRun_ShortGeneratedAnswerEscalates(t *testing.T) {
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever:  &testutil.StubRetriever{},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{"too short"}},
		Reviewer:   testutil.Approve(),
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.Tries != 0 {
		t.Errorf("Tries = %d, want 0", final.Tries)
	}
	if final.EscalationReason != "Response generation failure" {
		t.Errorf("EscalationReason = %q", final.EscalationReason)
	}
}

func TestRun_HandoffPhraseInAnswerEscalates(t *testing.T) {
	// The retrieved answer already tells the customer to seek a human,
	// so the pre-check escalates without a generation attempt.
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever: &testutil.StubRetriever{Result: supportflow.Retrieval{
			Answer:  "This is a complex issue, please contact a human agent.",
			MatchID: "general_001",
		}},
		Generator: &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:  testutil.Approve(),
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.EscalationReason != "Agent recommended human escalation" {
		t.Errorf("EscalationReason = %q", final.EscalationReason)
	}
	if final.Tries != 0 {
		t.Errorf("Tries = %d, want 0", final.Tries)
	}
	if !strings.Contains(final.Answer, "specialized attention") {
		t.Errorf("Answer = %q, want the escalation notice", final.Answer)
	}
}

func TestRun_SinkFailureDoesNotChangeOutcome(t *testing.T) {
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever:  &testutil.StubRetriever{},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:   testutil.Revise(),
		Sink:       &testutil.FailingSink{Err: errors.New("disk full")},
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.EscalationLogged {
		t.Error("EscalationLogged = true, want false after sink failure")
	}
	if !strings.Contains(final.Answer, "escalated to our specialized support team") {
		t.Errorf("Answer = %q, sink failure must not change the customer answer", final.Answer)
	}
}

func TestRun_SecondAttemptCanResolve(t *testing.T) {
	reviewer := &testutil.ScriptedReviewer{Decisions: []supportflow.ReviewDecision{
		supportflow.ReviewRevise,
		supportflow.ReviewApprove,
	}}
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryTechnical},
		Retriever:  &testutil.StubRetriever{Result: supportflow.Retrieval{Answer: "kb answer", MatchID: "technical_001"}},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer, longAnswer + " Improved."}},
		Reviewer:   reviewer,
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if final.Escalated {
		t.Error("Escalated = true, want false")
	}
	if final.Tries != 2 {
		t.Errorf("Tries = %d, want 2", final.Tries)
	}
	if final.Answer != longAnswer+" Improved." {
		t.Errorf("Answer = %q, want the revised answer", final.Answer)
	}
}

func TestRun_CanceledContext(t *testing.T) {
	controller := newController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever:  &testutil.StubRetriever{},
		Generator:  &testutil.ScriptedGenerator{Responses: []string{longAnswer}},
		Reviewer:   testutil.Approve(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := controller.Run(ctx, newState("s", "d")); err == nil {
		t.Error("Run with canceled context should fail")
	}
}

func TestRun_CustomCeiling(t *testing.T) {
	generator := &testutil.ScriptedGenerator{Responses: []string{longAnswer}}
	controller := supportflow.NewController(supportflow.Collaborators{
		Classifier: &testutil.StubClassifier{Category: supportflow.CategoryGeneral},
		Retriever:  &testutil.StubRetriever{},
		Generator:  generator,
		Reviewer:   testutil.Revise(),
	}, supportflow.ControllerConfig{
		MaxRetryAttempts: 1,
		Logger:           quietLogger(),
	})

	final, err := controller.Run(context.Background(), newState("s", "d"))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if !final.Escalated {
		t.Fatal("Escalated = false, want true")
	}
	if final.Tries != 1 {
		t.Errorf("Tries = %d, want 1", final.Tries)
	}
	if generator.Calls() != 1 {
		t.Errorf("generator calls = %d, want 1", generator.Calls())
	}
}
