package dto

import (
	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

type SearchRequest struct {
	Query      string    `json:"query" validate:"required"`
	DocumentId uuid.UUID `json:"document_id" validate:"required"`
	Method     string    `json:"method" validate:"required,oneof=vector keyword hybrid"`
	Limit      int       `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

type SearchMetadata struct {
	// Method reflects what was actually used, after any degradation.
	Method string `json:"method"`
	Query  string `json:"query"`
}

type SearchResponse struct {
	Results  []store.SearchResult `json:"results"`
	Metadata SearchMetadata       `json:"metadata"`
}
