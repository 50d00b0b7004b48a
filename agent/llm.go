package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	llm "github.com/randalmurphal/llmkit/claude"

	"github.com/randalmurphal/supportflow"
	"github.com/randalmurphal/supportflow/prompt"
	"github.com/randalmurphal/supportflow/task"
)

// Prompt template names the LLM collaborators render.
const (
	promptClassify = "classify-ticket"
	promptGenerate = "generate-response"
	promptReview   = "review-response"
)

// Config carries the shared dependencies of the LLM collaborators.
type Config struct {
	// Prompts loads the prompt templates. Defaults to the embedded set.
	Prompts *prompt.Loader

	// Logger receives per-call structured logs. Defaults to slog.Default.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Prompts == nil {
		c.Prompts = prompt.NewLoader(".")
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// NewClaudeClient creates a Claude CLI client sized for the given task
// type: generation gets the strongest model, classification the cheapest.
func NewClaudeClient(t task.Type) llm.Client {
	return llm.NewClaudeCLI(llm.WithModel(string(task.SelectModel(t))))
}

// =============================================================================
// Classifier
// =============================================================================

// LLMClassifier categorizes tickets with a single completion call.
type LLMClassifier struct {
	client llm.Client
	cfg    Config
}

// NewLLMClassifier creates a classifier over the given client.
func NewLLMClassifier(client llm.Client, cfg Config) *LLMClassifier {
	return &LLMClassifier{client: client, cfg: cfg.withDefaults()}
}

// Classify returns the category for a ticket. The model's raw output is
// normalized through the closed category set, so a rambling completion
// still maps to a valid category.
func (c *LLMClassifier) Classify(ctx context.Context, subject, description string) (supportflow.Category, error) {
	categories := make([]string, 0, 4)
	for _, cat := range supportflow.Categories() {
		categories = append(categories, string(cat))
	}

	text, err := c.cfg.Prompts.LoadWithVars(promptClassify, map[string]any{
		"Categories":  categories,
		"Subject":     subject,
		"Description": description,
	})
	if err != nil {
		return supportflow.CategoryGeneral, fmt.Errorf("%w: %v", supportflow.ErrClassification, err)
	}

	resp, err := c.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: text}},
	})
	if err != nil {
		return supportflow.CategoryGeneral, fmt.Errorf("%w: %v", supportflow.ErrClassification, err)
	}

	category := supportflow.ParseCategory(resp.Content)
	c.cfg.Logger.Debug("ticket classified",
		"raw", strings.TrimSpace(resp.Content),
		"category", string(category))
	return category, nil
}

// =============================================================================
// Generator
// =============================================================================

// LLMGenerator drafts customer responses, building on a knowledge base
// match when one is available.
type LLMGenerator struct {
	client llm.Client
	cfg    Config
}

// NewLLMGenerator creates a generator over the given client.
func NewLLMGenerator(client llm.Client, cfg Config) *LLMGenerator {
	return &LLMGenerator{client: client, cfg: cfg.withDefaults()}
}

// Generate returns a drafted customer response.
func (g *LLMGenerator) Generate(ctx context.Context, req supportflow.GenerationRequest) (string, error) {
	text, err := g.cfg.Prompts.LoadWithVars(promptGenerate, map[string]any{
		"Subject":     req.Subject,
		"Description": req.Description,
		"Category":    string(req.Category),
		"PriorAnswer": req.PriorAnswer,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", supportflow.ErrGeneration, err)
	}

	resp, err := g.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: text}},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", supportflow.ErrGeneration, err)
	}

	return strings.TrimSpace(resp.Content), nil
}

// =============================================================================
// Reviewer
// =============================================================================

// LLMReviewer judges drafted responses against the quality rubric in the
// review prompt.
type LLMReviewer struct {
	client llm.Client
	cfg    Config
}

// NewLLMReviewer creates a reviewer over the given client.
func NewLLMReviewer(client llm.Client, cfg Config) *LLMReviewer {
	return &LLMReviewer{client: client, cfg: cfg.withDefaults()}
}

// Review returns the approve/revise decision for a drafted answer. An
// unclear model output counts as revise; only transport failures surface
// as errors.
func (r *LLMReviewer) Review(ctx context.Context, req supportflow.ReviewRequest) (supportflow.ReviewDecision, error) {
	text, err := r.cfg.Prompts.LoadWithVars(promptReview, map[string]any{
		"Subject":     req.Subject,
		"Description": req.Description,
		"Category":    string(req.Category),
		"Answer":      req.Answer,
	})
	if err != nil {
		return supportflow.ReviewRevise, fmt.Errorf("%w: %v", supportflow.ErrReview, err)
	}

	resp, err := r.client.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{{Role: llm.RoleUser, Content: text}},
	})
	if err != nil {
		return supportflow.ReviewRevise, fmt.Errorf("%w: %v", supportflow.ErrReview, err)
	}

	verdict := strings.ToLower(strings.TrimSpace(resp.Content))
	switch {
	case strings.Contains(verdict, "approve"):
		return supportflow.ReviewApprove, nil
	case strings.Contains(verdict, "revise"):
		return supportflow.ReviewRevise, nil
	default:
		r.cfg.Logger.Warn("unclear review verdict", "raw", verdict)
		return supportflow.ReviewRevise, nil
	}
}
