package contract

import (
	"context"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/specification"
)

type DocumentRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
}
