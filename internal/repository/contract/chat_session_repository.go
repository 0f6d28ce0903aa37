package contract

import (
	"context"

	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/specification"
)

type ChatSessionRepository interface {
	// CreateAtomic inserts the session with ON CONFLICT DO NOTHING and
	// reports whether a row was actually written. Returns (false, nil) when
	// the insert was a no-op so the caller can fall back to a plain Create.
	CreateAtomic(ctx context.Context, session *entity.ChatSession) (bool, error)
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
