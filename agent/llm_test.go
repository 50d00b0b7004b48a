package agent

import (
	"context"
	"log/slog"
	"testing"

	llm "github.com/randalmurphal/llmkit/claude"

	"github.com/randalmurphal/supportflow"
)

func quietConfig() Config {
	return Config{Logger: slog.New(slog.DiscardHandler)}
}

func TestLLMClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     supportflow.Category
	}{
		{"exact", "Billing", supportflow.CategoryBilling},
		{"lowercase", "security", supportflow.CategorySecurity},
		{"padded", "  Technical\n", supportflow.CategoryTechnical},
		{"rambling", "I would say this is a Billing issue.", supportflow.CategoryGeneral},
		{"unknown", "Sales", supportflow.CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockClient("").WithResponses(tt.response)
			classifier := NewLLMClassifier(mock, quietConfig())

			got, err := classifier.Classify(context.Background(), "subject", "description")
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLLMGenerator_TrimsResponse(t *testing.T) {
	mock := llm.NewMockClient("").WithResponses("\n  Here is your answer with next steps.  \n")
	gen := NewLLMGenerator(mock, quietConfig())

	got, err := gen.Generate(context.Background(), supportflow.GenerationRequest{
		Subject:     "s",
		Description: "d",
		Category:    supportflow.CategoryGeneral,
		PriorAnswer: "prior",
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "Here is your answer with next steps." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestLLMReviewer_Verdicts(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     supportflow.ReviewDecision
	}{
		{"approve", "approve", supportflow.ReviewApprove},
		{"approve sentence", "Decision: APPROVE, meets all standards", supportflow.ReviewApprove},
		{"revise", "revise", supportflow.ReviewRevise},
		{"unclear", "it depends on the customer", supportflow.ReviewRevise},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockClient("").WithResponses(tt.response)
			reviewer := NewLLMReviewer(mock, quietConfig())

			got, err := reviewer.Review(context.Background(), supportflow.ReviewRequest{
				Subject:     "s",
				Description: "d",
				Category:    supportflow.CategoryGeneral,
				Answer:      "an answer",
			})
			if err != nil {
				t.Fatalf("Review: %v", err)
			}
			if got != tt.want {
				t.Errorf("Review() = %q, want %q", got, tt.want)
			}
		})
	}
}
