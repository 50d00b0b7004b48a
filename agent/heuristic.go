package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/supportflow"
)

// =============================================================================
// Keyword Classifier
// =============================================================================

// categoryKeywords drives the offline classifier. First category with a
// hit wins, scanned in the order below.
var categoryKeywords = []struct {
	category supportflow.Category
	words    []string
}{
	{supportflow.CategorySecurity, []string{
		"hacked", "unauthorized", "suspicious", "breach", "compromised",
		"phishing", "two-factor", "2fa",
	}},
	{supportflow.CategoryBilling, []string{
		"charge", "charged", "billed", "billing", "payment", "refund",
		"invoice", "subscription", "premium", "paid",
	}},
	{supportflow.CategoryTechnical, []string{
		"password", "login", "log in", "error", "crash", "bug", "slow",
		"connect", "internet", "reset", "install", "update",
	}},
}

// KeywordClassifier categorizes tickets by keyword lookup. It needs no
// network and is deterministic, which makes it the default for tests and
// demos.
type KeywordClassifier struct{}

// Classify scans subject then description for category keywords.
func (KeywordClassifier) Classify(ctx context.Context, subject, description string) (supportflow.Category, error) {
	if err := ctx.Err(); err != nil {
		return supportflow.CategoryGeneral, err
	}
	text := strings.ToLower(subject + " " + description)
	for _, ck := range categoryKeywords {
		for _, w := range ck.words {
			if strings.Contains(text, w) {
				return ck.category, nil
			}
		}
	}
	return supportflow.CategoryGeneral, nil
}

// =============================================================================
// Template Generator
// =============================================================================

// TemplateGenerator produces responses without an LLM: a knowledge base
// match is wrapped in a short courtesy frame, anything else gets a
// category-appropriate holding reply.
type TemplateGenerator struct{}

// Generate returns a deterministic response for the request.
func (TemplateGenerator) Generate(ctx context.Context, req supportflow.GenerationRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if strings.TrimSpace(req.PriorAnswer) != "" {
		return fmt.Sprintf(
			"Thank you for reaching out about %q. %s If you need anything else, just reply to this message.",
			strings.TrimSpace(req.Subject), strings.TrimSpace(req.PriorAnswer)), nil
	}

	return fmt.Sprintf(
		"Thank you for contacting support about your %s question. "+
			"We've logged your request and our team is looking into it. "+
			"You'll hear back from us shortly with a full answer.",
		strings.ToLower(string(req.Category))), nil
}

// =============================================================================
// Rule Reviewer
// =============================================================================

// reviewRejectMarkers are substrings that fail a response outright:
// leftover placeholders, error spew, and unprofessional wording.
var reviewRejectMarkers = []string{
	"[placeholder]", "todo", "fixme", "xxx",
	"error:", "exception:", "failed to", "null", "undefined",
	"stupid", "dumb", "ridiculous", "annoying",
}

// RuleReviewer applies mechanical quality checks: minimum length and a
// denylist of markers that should never reach a customer.
type RuleReviewer struct{}

// Review approves any answer that clears the mechanical checks.
func (RuleReviewer) Review(ctx context.Context, req supportflow.ReviewRequest) (supportflow.ReviewDecision, error) {
	if err := ctx.Err(); err != nil {
		return supportflow.ReviewRevise, err
	}

	answer := strings.TrimSpace(req.Answer)
	if len(answer) < 20 {
		return supportflow.ReviewRevise, nil
	}

	lower := strings.ToLower(answer)
	for _, marker := range reviewRejectMarkers {
		if strings.Contains(lower, marker) {
			return supportflow.ReviewRevise, nil
		}
	}

	return supportflow.ReviewApprove, nil
}
