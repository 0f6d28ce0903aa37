package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatCitation links an assistant turn to a source paragraph. Citations only
// ever reference paragraphs that were in the result set shown to the model.
type ChatCitation struct {
	Id            uuid.UUID
	ChatMessageId uuid.UUID
	ParagraphId   uuid.UUID
	SectionTitle  string
	Preview       string
	CreatedAt     time.Time
}
