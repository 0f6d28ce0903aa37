package implementation

import (
	"context"
	"errors"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/mapper"
	"doc-collab-be/internal/model"
	"doc-collab-be/internal/repository/contract"
	"doc-collab-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParagraphRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ParagraphMapper
}

func NewParagraphRepository(db *gorm.DB) contract.ParagraphRepository {
	return &ParagraphRepositoryImpl{
		db:     db,
		mapper: mapper.NewParagraphMapper(),
	}
}

func (r *ParagraphRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	return specification.ApplyAll(db, specs...)
}

func (r *ParagraphRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Paragraph, error) {
	var m model.Paragraph
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ParagraphRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Paragraph, error) {
	var models []*model.Paragraph
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ParagraphRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Paragraph{}), specs...)
	err := query.Count(&count).Error
	return count, err
}

// SearchSimilarWithScore computes cosine similarity as 1 - (embedding <=> query)
// since pgvector's <=> operator yields cosine distance.
func (r *ParagraphRepositoryImpl) SearchSimilarWithScore(ctx context.Context, documentId uuid.UUID, embedding []float32, limit int, threshold float64) ([]*contract.ScoredParagraph, error) {
	if limit <= 0 {
		limit = 20
	}

	type result struct {
		model.Paragraph
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("paragraphs").
		Select("paragraphs.*, 1 - (embedding <=> ?) as similarity", queryVector).
		Where("document_id = ?", documentId).
		Where("embedding IS NOT NULL").
		Where("1 - (embedding <=> ?) >= ?", queryVector, threshold).
		Order("similarity DESC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredParagraph, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredParagraph{
			Paragraph:  r.mapper.ToEntity(&res.Paragraph),
			Similarity: res.Similarity,
		}
	}
	return scored, nil
}

// SearchFullText uses websearch_to_tsquery so the raw user phrasing works
// without manual operator escaping. Stop-word handling is Postgres's.
func (r *ParagraphRepositoryImpl) SearchFullText(ctx context.Context, documentId uuid.UUID, query string, limit int) ([]*entity.Paragraph, error) {
	if limit <= 0 {
		limit = 20
	}

	var models []*model.Paragraph
	err := r.db.WithContext(ctx).
		Table("paragraphs").
		Where("document_id = ?", documentId).
		Where("to_tsvector('english', content) @@ websearch_to_tsquery('english', ?)", query).
		Clauses(clause.OrderBy{Expression: clause.Expr{
			SQL:  "ts_rank(to_tsvector('english', content), websearch_to_tsquery('english', ?)) DESC",
			Vars: []interface{}{query},
		}}).
		Limit(limit).
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ParagraphRepositoryImpl) FindBySectionTitlePrefix(ctx context.Context, documentId uuid.UUID, prefix string) ([]*entity.Paragraph, error) {
	var models []*model.Paragraph
	err := r.db.WithContext(ctx).
		Where("document_id = ?", documentId).
		Scopes(func(db *gorm.DB) *gorm.DB {
			return specification.SectionTitlePrefix{Prefix: prefix}.Apply(db)
		}).
		Order("order_index ASC").
		Find(&models).Error

	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
