package fusion

import (
	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

// DefaultResultLimit bounds deduplicated result lists when the caller does
// not specify one.
const DefaultResultLimit = 20

// Deduplicate drops every result whose paragraph id was already seen earlier
// in the list, keeping first-seen order (section-boosted and vector-first
// entries win over later keyword duplicates). Truncation to limit happens
// after deduplication so duplicates cannot starve the result set.
func Deduplicate(results []store.SearchResult, limit int) []store.SearchResult {
	if limit <= 0 {
		limit = DefaultResultLimit
	}

	seen := make(map[uuid.UUID]bool, len(results))
	deduped := make([]store.SearchResult, 0, len(results))
	for _, res := range results {
		if seen[res.ParagraphId] {
			continue
		}
		seen[res.ParagraphId] = true
		deduped = append(deduped, res)
	}

	if len(deduped) > limit {
		deduped = deduped[:limit]
	}
	return deduped
}
