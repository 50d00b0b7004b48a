// Package task provides task-based model selection for the LLM-backed
// support collaborators.
//
// Each workflow stage maps to a task type, and each task type maps to a
// model tier: classification and review are cheap, high-volume calls, while
// response generation carries the customer-facing quality bar.
//
// Example usage:
//
//	selector := task.NewSelector()
//	name := task.SelectModel(task.Generate)
package task
