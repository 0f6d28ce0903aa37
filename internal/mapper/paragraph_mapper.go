package mapper

import (
	"time"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/model"

	"github.com/pgvector/pgvector-go"
)

type ParagraphMapper struct{}

func NewParagraphMapper() *ParagraphMapper {
	return &ParagraphMapper{}
}

func (m *ParagraphMapper) ToEntity(p *model.Paragraph) *entity.Paragraph {
	if p == nil {
		return nil
	}

	var embedding []float32
	if p.Embedding != nil {
		embedding = p.Embedding.Slice()
	}

	return &entity.Paragraph{
		Id:           p.Id,
		DocumentId:   p.DocumentId,
		SectionId:    p.SectionId,
		SectionTitle: p.SectionTitle,
		Content:      p.Content,
		OrderIndex:   p.OrderIndex,
		Embedding:    embedding,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *ParagraphMapper) ToModel(p *entity.Paragraph) *model.Paragraph {
	if p == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if p.Embedding != nil {
		v := pgvector.NewVector(p.Embedding)
		embedding = &v
	}

	return &model.Paragraph{
		Id:           p.Id,
		DocumentId:   p.DocumentId,
		SectionId:    p.SectionId,
		SectionTitle: p.SectionTitle,
		Content:      p.Content,
		OrderIndex:   p.OrderIndex,
		Embedding:    embedding,
		CreatedAt:    p.CreatedAt,
	}
}

func (m *ParagraphMapper) ToEntities(models []*model.Paragraph) []*entity.Paragraph {
	entities := make([]*entity.Paragraph, len(models))
	for i, p := range models {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *ParagraphMapper) DocumentToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:        d.Id,
		Title:     d.Title,
		OwnerId:   d.OwnerId,
		CreatedAt: d.CreatedAt,
		UpdatedAt: updatedAt,
	}
}
