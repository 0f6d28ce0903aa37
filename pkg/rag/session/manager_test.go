package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/memory"
	"doc-collab-be/internal/repository/specification"
)

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) CreateAtomic(ctx context.Context, session *entity.ChatSession) (bool, error) {
	args := m.Called(ctx, session)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepository) Create(ctx context.Context, session *entity.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) Update(ctx context.Context, session *entity.ChatSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error) {
	args := m.Called(ctx, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChatSession), args.Error(1)
}

func (m *mockSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error) {
	args := m.Called(ctx, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChatSession), args.Error(1)
}

func (m *mockSessionRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func newManager(repo *mockSessionRepository) *Manager {
	return NewManager(repo, memory.NewSessionCache(), nopLogger{})
}

func TestResolve_NilIdCreatesSession(t *testing.T) {
	repo := new(mockSessionRepository)
	documentId, userId := uuid.New(), uuid.New()

	repo.On("CreateAtomic", mock.Anything, mock.MatchedBy(func(s *entity.ChatSession) bool {
		return s.DocumentId == documentId && s.UserId == userId && s.Id != uuid.Nil
	})).Return(true, nil)

	sess, created, err := newManager(repo).Resolve(context.Background(), nil, documentId, userId)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, constant.SessionDefaultTitle, sess.Title)
	repo.AssertExpectations(t)
}

func TestResolve_AtomicFailureFallsBackToPlainCreate(t *testing.T) {
	repo := new(mockSessionRepository)

	repo.On("CreateAtomic", mock.Anything, mock.Anything).Return(false, errors.New("constraint infra hiccup"))
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	sess, created, err := newManager(repo).Resolve(context.Background(), nil, uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, uuid.Nil, sess.Id)
	repo.AssertExpectations(t)
}

func TestResolve_BothInsertsFailingIsCreationFailed(t *testing.T) {
	repo := new(mockSessionRepository)

	repo.On("CreateAtomic", mock.Anything, mock.Anything).Return(false, errors.New("down"))
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("still down"))

	_, _, err := newManager(repo).Resolve(context.Background(), nil, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ClassSessionCreationFailed))
}

func TestResolve_SuppliedIdLoadsFromStore(t *testing.T) {
	repo := new(mockSessionRepository)
	existing := &entity.ChatSession{Id: uuid.New(), DocumentId: uuid.New(), UserId: uuid.New(), Title: "scope questions"}

	repo.On("FindOne", mock.Anything, mock.Anything).Return(existing, nil).Once()

	mgr := newManager(repo)
	sess, created, err := mgr.Resolve(context.Background(), &existing.Id, existing.DocumentId, existing.UserId)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, existing.Id, sess.Id)

	// Second resolve is served from cache; FindOne was set up Once.
	sess2, _, err := mgr.Resolve(context.Background(), &existing.Id, existing.DocumentId, existing.UserId)
	require.NoError(t, err)
	assert.Equal(t, existing.Id, sess2.Id)
	repo.AssertExpectations(t)
}

func TestResolve_UnknownIdIsNotFound(t *testing.T) {
	repo := new(mockSessionRepository)
	repo.On("FindOne", mock.Anything, mock.Anything).Return(nil, nil)

	missing := uuid.New()
	_, _, err := newManager(repo).Resolve(context.Background(), &missing, uuid.New(), uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ClassSessionNotFound))
}

func TestAutosetTitle_FromFirstMessage(t *testing.T) {
	repo := new(mockSessionRepository)
	sess := &entity.ChatSession{Id: uuid.New(), Title: constant.SessionDefaultTitle}

	repo.On("Update", mock.Anything, sess).Return(nil)

	newManager(repo).AutosetTitle(context.Background(), sess, "what are the deliverables in section 3?")
	assert.Equal(t, "what are the deliverables in section 3?", sess.Title)
	repo.AssertExpectations(t)
}

func TestAutosetTitle_ClipsLongMessage(t *testing.T) {
	repo := new(mockSessionRepository)
	sess := &entity.ChatSession{Id: uuid.New(), Title: ""}

	repo.On("Update", mock.Anything, sess).Return(nil)

	long := strings.Repeat("q", constant.SessionTitleMaxLen+30)
	newManager(repo).AutosetTitle(context.Background(), sess, long)
	assert.Len(t, sess.Title, constant.SessionTitleMaxLen)
}

func TestAutosetTitle_KeepsExistingTitle(t *testing.T) {
	repo := new(mockSessionRepository)
	sess := &entity.ChatSession{Id: uuid.New(), Title: "already named"}

	newManager(repo).AutosetTitle(context.Background(), sess, "new question")
	assert.Equal(t, "already named", sess.Title)
	repo.AssertNotCalled(t, "Update")
}

func TestAutosetTitle_UpdateFailureIsNotFatal(t *testing.T) {
	repo := new(mockSessionRepository)
	sess := &entity.ChatSession{Id: uuid.New(), Title: constant.SessionDefaultTitle}

	repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("db down"))

	newManager(repo).AutosetTitle(context.Background(), sess, "question")
	// Title is set in memory even when persistence fails.
	assert.Equal(t, "question", sess.Title)
}
