package dto

import (
	"time"

	"github.com/google/uuid"
)

type ConverseRequest struct {
	Message    string     `json:"message" validate:"required"`
	DocumentId uuid.UUID  `json:"document_id" validate:"required"`
	SessionId  *uuid.UUID `json:"session_id,omitempty"`
	UserId     uuid.UUID  `json:"user_id" validate:"required"`
	Stream     bool       `json:"stream,omitempty"`
}

type SourceDTO struct {
	ParagraphId  uuid.UUID `json:"paragraph_id"`
	SectionTitle string    `json:"section_title"`
	Preview      string    `json:"preview"`
}

type ConverseResponse struct {
	Content   string      `json:"content"`
	Sources   []SourceDTO `json:"sources"`
	SessionId uuid.UUID   `json:"session_id"`
}

// StreamChunk is one SSE frame of a streamed answer.
type StreamChunk struct {
	Chunk string `json:"chunk"`
}

// StreamTerminal is the final SSE frame, carrying everything that is only
// known once generation completes.
type StreamTerminal struct {
	Sources   []SourceDTO `json:"sources"`
	SessionId uuid.UUID   `json:"session_id"`
	Done      bool        `json:"done"`
}

type GetSessionsRequest struct {
	UserId     uuid.UUID `query:"userId" validate:"required"`
	DocumentId uuid.UUID `query:"documentId" validate:"required"`
}

type SessionResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type MessageResponse struct {
	Id        uuid.UUID              `json:"id"`
	Role      string                 `json:"role"`
	Content   string                 `json:"content"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Citations []SourceDTO            `json:"citations,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
