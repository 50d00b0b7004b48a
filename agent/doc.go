// Package agent provides the collaborator implementations that plug into a
// supportflow controller.
//
// LLM-backed collaborators:
//   - LLMClassifier: Categorizes tickets with a completion call
//   - LLMGenerator: Drafts customer responses, optionally building on a
//     knowledge base match
//   - LLMReviewer: Approves or rejects drafted responses
//
// Offline collaborators for tests, demos, and air-gapped deployments:
//   - KeywordClassifier: Categorizes by keyword lookup
//   - TemplateGenerator: Wraps the retrieved answer in a canned reply
//   - RuleReviewer: Approves anything that clears basic quality rules
//
// Example usage:
//
//	client := agent.NewClaudeClient(task.Generate)
//	gen := agent.NewLLMGenerator(client, agent.Config{Prompts: loader})
package agent
