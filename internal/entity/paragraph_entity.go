package entity

import (
	"time"

	"github.com/google/uuid"
)

// Paragraph is the retrievable unit of document text. The pipeline never
// mutates paragraphs; the embedding may be nil when the ingestion side has
// not yet computed one.
type Paragraph struct {
	Id           uuid.UUID
	DocumentId   uuid.UUID
	SectionId    uuid.UUID
	SectionTitle string
	Content      string
	OrderIndex   int
	Embedding    []float32
	CreatedAt    time.Time
}
