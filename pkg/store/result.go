package store

import "github.com/google/uuid"

// Source tags where a search result came from.
type Source string

const (
	SourceVector  Source = "vector"
	SourceKeyword Source = "keyword"
	SourceSection Source = "section"
)

// SearchResult is a transient projection of a paragraph plus a ranking
// weight. Similarity is not bounded to [0,1] after fusion and boosting, so it
// must never be surfaced as a confidence percentage.
type SearchResult struct {
	ParagraphId  uuid.UUID `json:"paragraph_id"`
	Content      string    `json:"content"`
	SectionId    uuid.UUID `json:"section_id"`
	SectionTitle string    `json:"section_title"`
	OrderIndex   int       `json:"order_index"`
	Similarity   float64   `json:"similarity"`
	Source       Source    `json:"source"`
}
