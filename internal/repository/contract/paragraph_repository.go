package contract

import (
	"context"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredParagraph wraps a Paragraph with its cosine similarity to a query
// embedding.
type ScoredParagraph struct {
	Paragraph  *entity.Paragraph
	Similarity float64
}

type ParagraphRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Paragraph, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Paragraph, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// SearchSimilarWithScore returns up to limit paragraphs of the document
	// whose cosine similarity to the embedding meets the threshold, ordered
	// descending by similarity. An empty index yields an empty slice, not an
	// error.
	SearchSimilarWithScore(ctx context.Context, documentId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*ScoredParagraph, error)

	// SearchFullText runs a websearch-style full-text query over paragraph
	// content scoped to the document, ordered by the store's native relevance
	// ranking.
	SearchFullText(ctx context.Context, documentId uuid.UUID, query string, limit int) ([]*entity.Paragraph, error)

	// FindBySectionTitlePrefix returns all paragraphs of the document whose
	// section title starts with prefix, in document order.
	FindBySectionTitlePrefix(ctx context.Context, documentId uuid.UUID, prefix string) ([]*entity.Paragraph, error)
}
