package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_EmbeddedPrompts(t *testing.T) {
	loader := NewLoader(t.TempDir())

	for _, name := range []string{"classify-ticket", "generate-response", "review-response"} {
		text, err := loader.Load(name)
		if err != nil {
			t.Errorf("Load(%q): %v", name, err)
			continue
		}
		if text == "" {
			t.Errorf("Load(%q) returned empty prompt", name)
		}
	}
}

func TestLoad_UnknownPrompt(t *testing.T) {
	loader := NewLoader(t.TempDir())

	if _, err := loader.Load("does-not-exist"); err == nil {
		t.Error("expected error for unknown prompt")
	}
}

func TestLoadWithVars_ClassifyTicket(t *testing.T) {
	loader := NewLoader(t.TempDir())

	text, err := loader.LoadWithVars("classify-ticket", map[string]any{
		"Categories":  []string{"Billing", "Technical", "Security", "General"},
		"Subject":     "Charged twice",
		"Description": "I was billed two times",
	})
	if err != nil {
		t.Fatalf("LoadWithVars: %v", err)
	}

	for _, want := range []string{"Billing, Technical, Security, General", "Charged twice", "I was billed two times"} {
		if !strings.Contains(text, want) {
			t.Errorf("rendered prompt missing %q", want)
		}
	}
}

func TestLoadWithVars_GenerateResponsePriorAnswerDefault(t *testing.T) {
	loader := NewLoader(t.TempDir())

	text, err := loader.LoadWithVars("generate-response", map[string]any{
		"Subject":     "s",
		"Description": "d",
		"Category":    "General",
		"PriorAnswer": "",
	})
	if err != nil {
		t.Fatalf("LoadWithVars: %v", err)
	}
	if !strings.Contains(text, "No previous answer available") {
		t.Error("empty prior answer should render the default placeholder")
	}
}

func TestLoad_ProjectOverrideWins(t *testing.T) {
	dir := t.TempDir()
	promptDir := filepath.Join(dir, ".supportflow", "prompts")
	if err := os.MkdirAll(promptDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	override := "Custom classify prompt for {{ .Subject }}"
	if err := os.WriteFile(filepath.Join(promptDir, "classify-ticket.txt"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	loader := NewLoader(dir)
	text, err := loader.LoadWithVars("classify-ticket", map[string]any{"Subject": "Hello"})
	if err != nil {
		t.Fatalf("LoadWithVars: %v", err)
	}
	if text != "Custom classify prompt for Hello" {
		t.Errorf("text = %q, want override", text)
	}
}

func TestList_IncludesEmbedded(t *testing.T) {
	loader := NewLoader(t.TempDir())

	names := loader.List()
	found := make(map[string]bool)
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"classify-ticket", "generate-response", "review-response"} {
		if !found[want] {
			t.Errorf("List() missing %q", want)
		}
	}
}
