// Package kb provides the built-in support knowledge base and a retriever
// over it.
//
// Core types:
//   - Entry: One knowledge base article (question, keywords, canned answer)
//   - Store: In-memory entry collection with layered lookup
//
// Lookup runs three strategies in order of precision: literal keyword
// containment, category-scoped fuzzy matching, and a global fuzzy pass over
// every question. The first strategy that clears the similarity threshold
// wins.
//
// Example usage:
//
//	store := kb.NewStore(kb.DefaultEntries(), 0.4)
//	match, err := store.Retrieve(ctx, "I was charged twice", supportflow.CategoryBilling)
package kb
