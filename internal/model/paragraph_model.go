package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type Paragraph struct {
	Id           uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId   uuid.UUID        `gorm:"type:uuid;not null;index"`
	SectionId    uuid.UUID        `gorm:"type:uuid;not null;index"`
	SectionTitle string           `gorm:"type:varchar(255)"`
	Content      string           `gorm:"type:text"`
	OrderIndex   int              `gorm:"default:0"`
	Embedding    *pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	CreatedAt    time.Time        `gorm:"autoCreateTime"`
}

func (Paragraph) TableName() string {
	return "paragraphs"
}
