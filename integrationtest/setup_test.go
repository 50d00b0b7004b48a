package integrationtest

import (
	"log/slog"
	"path/filepath"
	"testing"

	llm "github.com/randalmurphal/llmkit/claude"

	"github.com/randalmurphal/supportflow"
	"github.com/randalmurphal/supportflow/agent"
	"github.com/randalmurphal/supportflow/escalation"
	"github.com/randalmurphal/supportflow/kb"
	"github.com/randalmurphal/supportflow/transcript"
)

// harness bundles everything a workflow test needs to inspect afterwards.
type harness struct {
	runner      *supportflow.Runner
	sink        *escalation.Memory
	transcripts *transcript.FileStore
}

// setupRunner wires a full LLM-backed workflow over a mock client. The
// same client serves classify, generate, and review calls, so scripted
// responses must follow the stage order of the run.
func setupRunner(t *testing.T, mock llm.Client) *harness {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	cfg := agent.Config{Logger: logger}

	sink := escalation.NewMemory()
	transcripts, err := transcript.NewFileStore(transcript.StoreConfig{
		BaseDir: filepath.Join(t.TempDir(), "transcripts"),
	})
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	controller := supportflow.NewController(supportflow.Collaborators{
		Classifier: agent.NewLLMClassifier(mock, cfg),
		Retriever:  kb.NewStore(kb.DefaultEntries(), kb.DefaultSimilarityThreshold),
		Generator:  agent.NewLLMGenerator(mock, cfg),
		Reviewer:   agent.NewLLMReviewer(mock, cfg),
		Sink:       sink,
	}, supportflow.ControllerConfig{
		Logger:      logger,
		Transcripts: transcripts,
	})

	runner := supportflow.NewRunner(controller, supportflow.RunnerConfig{
		IncludeDebug: true,
		Logger:       logger,
		Transcripts:  transcripts,
	})

	return &harness{runner: runner, sink: sink, transcripts: transcripts}
}

// mockResponses creates a MockClient with sequential responses.
func mockResponses(responses ...string) *llm.MockClient {
	return llm.NewMockClient("").WithResponses(responses...)
}
