package kb

import (
	"context"
	"strings"

	"github.com/randalmurphal/supportflow"
)

// DefaultSimilarityThreshold is the minimum score a fuzzy match must reach.
const DefaultSimilarityThreshold = 0.4

// Store is an in-memory knowledge base. It implements
// supportflow.Retriever. The entry slice is treated as immutable after
// construction, so a Store is safe for concurrent use.
type Store struct {
	entries   []Entry
	threshold float64
}

// NewStore creates a store over the given entries. A threshold outside
// (0, 1] falls back to DefaultSimilarityThreshold.
func NewStore(entries []Entry, threshold float64) *Store {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &Store{entries: entries, threshold: threshold}
}

// Entries returns a copy of the stored entries.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Retrieve searches the knowledge base for the best answer to the given
// description.
//
// Strategies run most-precise first:
//  1. Keyword containment: entries whose literal keyword appears in the
//     description, ranked by fuzzy score against question and keywords.
//  2. Category scope: entries in the hinted category, same ranking.
//  3. Global fuzzy: best question match across every entry.
//
// A miss returns a zero Retrieval and nil error; the caller supplies the
// customer-facing fallback.
func (s *Store) Retrieve(ctx context.Context, description string, hint supportflow.Category) (supportflow.Retrieval, error) {
	if err := ctx.Err(); err != nil {
		return supportflow.Retrieval{}, err
	}
	query := strings.TrimSpace(description)
	if query == "" {
		return supportflow.Retrieval{}, nil
	}

	if match := s.bestMatch(query, s.keywordMatches(query)); match != nil {
		return retrievalOf(match), nil
	}

	if hint.Valid() {
		if match := s.bestMatch(query, s.categoryMatches(hint)); match != nil {
			return retrievalOf(match), nil
		}
	}

	if match := s.fuzzyMatch(query); match != nil {
		return retrievalOf(match), nil
	}

	return supportflow.Retrieval{}, nil
}

// keywordMatches returns entries with at least one keyword literally
// contained in the query.
func (s *Store) keywordMatches(query string) []*Entry {
	lower := strings.ToLower(query)
	var matches []*Entry
	for i := range s.entries {
		for _, kw := range s.entries[i].Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				matches = append(matches, &s.entries[i])
				break
			}
		}
	}
	return matches
}

// categoryMatches returns entries belonging to the given category.
func (s *Store) categoryMatches(category supportflow.Category) []*Entry {
	var matches []*Entry
	for i := range s.entries {
		if s.entries[i].Category == category {
			matches = append(matches, &s.entries[i])
		}
	}
	return matches
}

// bestMatch ranks candidates by the higher of their question score and
// best keyword score, returning the winner if it clears the threshold.
func (s *Store) bestMatch(query string, candidates []*Entry) *Entry {
	var best *Entry
	bestScore := 0.0
	for _, entry := range candidates {
		score := similarity(query, entry.Question)
		for _, kw := range entry.Keywords {
			if kwScore := similarity(query, kw); kwScore > score {
				score = kwScore
			}
		}
		if score > bestScore && score >= s.threshold {
			bestScore = score
			best = entry
		}
	}
	return best
}

// fuzzyMatch finds the entry whose question best matches the query across
// the whole store.
func (s *Store) fuzzyMatch(query string) *Entry {
	var best *Entry
	bestScore := 0.0
	for i := range s.entries {
		score := similarity(query, s.entries[i].Question)
		if score > bestScore && score >= s.threshold {
			bestScore = score
			best = &s.entries[i]
		}
	}
	return best
}

func retrievalOf(entry *Entry) supportflow.Retrieval {
	return supportflow.Retrieval{
		Answer:        entry.Answer,
		MatchID:       entry.ID,
		MatchCategory: entry.Category,
	}
}
