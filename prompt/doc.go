// Package prompt provides prompt template loading for the LLM-backed
// collaborators.
//
// Templates are plain text/template files named <name>.txt. The loader
// searches .supportflow/prompts/ and prompts/ under the project directory
// before falling back to the embedded defaults, so deployments can override
// any prompt without rebuilding.
//
// Example usage:
//
//	loader := prompt.NewLoader(".")
//	text, err := loader.LoadWithVars("classify-ticket", map[string]any{
//	    "Subject":     "Charged twice",
//	    "Description": "I was billed two times this month",
//	})
package prompt
