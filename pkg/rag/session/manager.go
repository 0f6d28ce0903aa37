package session

import (
	"context"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/internal/repository/contract"
	"doc-collab-be/internal/repository/memory"
	"doc-collab-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Manager resolves the session for a conversation turn: creating one when
// the client sends no id, loading and validating one when it does.
type Manager struct {
	sessionRepository contract.ChatSessionRepository
	cache             *memory.SessionCache
	log               logger.ILogger
}

func NewManager(sessionRepository contract.ChatSessionRepository, cache *memory.SessionCache, log logger.ILogger) *Manager {
	return &Manager{
		sessionRepository: sessionRepository,
		cache:             cache,
		log:               log,
	}
}

// Resolve returns the session to use for this turn along with whether it was
// newly created. A nil sessionId creates a fresh session owned by userId; a
// supplied id must exist or the turn fails with a not-found error.
func (m *Manager) Resolve(ctx context.Context, sessionId *uuid.UUID, documentId, userId uuid.UUID) (*entity.ChatSession, bool, error) {
	if sessionId == nil {
		created, err := m.create(ctx, documentId, userId)
		if err != nil {
			return nil, false, err
		}
		return created, true, nil
	}

	if cached, found := m.cache.Get(sessionId.String()); found {
		return cached, false, nil
	}

	found, err := m.sessionRepository.FindOne(ctx, specification.ByID{ID: *sessionId})
	if err != nil {
		return nil, false, err
	}
	if found == nil {
		return nil, false, apperrors.NewSessionNotFound(sessionId.String())
	}

	m.cache.Save(found)
	return found, false, nil
}

func (m *Manager) create(ctx context.Context, documentId, userId uuid.UUID) (*entity.ChatSession, error) {
	newSession := &entity.ChatSession{
		Id:         uuid.New(),
		DocumentId: documentId,
		UserId:     userId,
		Title:      constant.SessionDefaultTitle,
	}

	inserted, err := m.sessionRepository.CreateAtomic(ctx, newSession)
	if err != nil {
		m.log.Warn("rag.session", "atomic create failed, retrying with plain insert", map[string]interface{}{
			"error": err.Error(),
		})
		if err := m.sessionRepository.Create(ctx, newSession); err != nil {
			return nil, apperrors.NewSessionCreationFailed(err)
		}
	} else if !inserted {
		// The id is request-scoped, so a conflict means the row already
		// exists from a retried request. Using it is correct.
		m.log.Info("rag.session", "atomic create was a no-op, session already exists", map[string]interface{}{
			"session_id": newSession.Id.String(),
		})
	}

	m.cache.Save(newSession)
	return newSession, nil
}

// AutosetTitle derives the session title from the first user message. It is
// a no-op once a real title is set; failures are logged, never fatal.
func (m *Manager) AutosetTitle(ctx context.Context, sess *entity.ChatSession, firstMessage string) {
	if sess.Title != "" && sess.Title != constant.SessionDefaultTitle {
		return
	}

	title := firstMessage
	if runes := []rune(title); len(runes) > constant.SessionTitleMaxLen {
		title = string(runes[:constant.SessionTitleMaxLen])
	}
	if title == "" {
		return
	}

	sess.Title = title
	if err := m.sessionRepository.Update(ctx, sess); err != nil {
		m.log.Warn("rag.session", "failed to autoset session title", map[string]interface{}{
			"session_id": sess.Id.String(),
			"error":      err.Error(),
		})
		return
	}
	m.cache.Save(sess)
}
