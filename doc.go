// Package supportflow routes incoming support tickets through a bounded
// pipeline of stages: classification, knowledge-base retrieval, response
// generation, quality review, and a continue/escalate decision. Every run
// ends with either a customer-facing answer or a durable escalation record.
//
// The package is organized into subpackages by domain:
//
//   - kb: knowledge-base entries and the retrieval engine
//   - agent: LLM-backed and heuristic collaborator implementations
//   - escalation: append-only escalation record sinks
//   - transcript: per-run audit trail of stage activity
//   - notify: notification services (Slack, webhook, log)
//   - http: retrying HTTP client backing outbound notifications
//   - config: configuration loading and resolution
//   - prompt: prompt template loading
//   - task: task-based model selection
//   - testutil: test utilities and fixtures
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/supportflow"
//	    "github.com/randalmurphal/supportflow/agent"
//	    "github.com/randalmurphal/supportflow/escalation"
//	    "github.com/randalmurphal/supportflow/kb"
//	)
//
//	ctrl := supportflow.NewController(supportflow.Collaborators{
//	    Classifier: agent.KeywordClassifier{},
//	    Retriever:  kb.NewStore(kb.DefaultEntries(), 0.4),
//	    Generator:  agent.TemplateGenerator{},
//	    Reviewer:   agent.RuleReviewer{},
//	    Sink:       escalation.NewCSVLog("escalations.csv"),
//	}, supportflow.ControllerConfig{MaxRetryAttempts: 2})
//
//	runner := supportflow.NewRunner(ctrl, supportflow.RunnerConfig{})
//	ticket := supportflow.NewTicket("I was charged twice", "Two charges on my card")
//	result, err := runner.Run(ctx, ticket)
//
// Collaborators are narrow interfaces; any of them can be swapped for an
// LLM-backed implementation from the agent package or a stub from testutil.
//
// See individual package documentation for detailed usage.
package supportflow
