package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatCitation struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatMessageId uuid.UUID `gorm:"type:uuid;not null;index"`
	ParagraphId   uuid.UUID `gorm:"type:uuid;not null;index"`
	SectionTitle  string    `gorm:"type:varchar(255)"`
	Preview       string    `gorm:"type:varchar(160)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`

	// Relationships
	ChatMessage *ChatMessage `gorm:"foreignKey:ChatMessageId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Paragraph   *Paragraph   `gorm:"foreignKey:ParagraphId;references:Id;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (ChatCitation) TableName() string {
	return "chat_citations"
}
