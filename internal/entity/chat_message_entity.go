package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn of a conversation. Immutable after creation.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Role          string
	Content       string
	// Metadata records how the answer was produced (retrieval method after
	// any degradation, the query as analyzed). Only set on assistant turns.
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
