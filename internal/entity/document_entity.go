package entity

import (
	"time"

	"github.com/google/uuid"
)

// Document is owned by the collaboration subsystem; this pipeline only reads
// it for the title used in prompt assembly.
type Document struct {
	Id        uuid.UUID
	Title     string
	OwnerId   uuid.UUID
	CreatedAt time.Time
	UpdatedAt *time.Time
}
