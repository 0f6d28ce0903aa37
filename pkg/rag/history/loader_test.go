package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/repository/specification"
)

type mockMessageRepository struct {
	mock.Mock
}

func (m *mockMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *mockMessageRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error) {
	args := m.Called(ctx, specs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChatMessage), args.Error(1)
}

func (m *mockMessageRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	args := m.Called(ctx, specs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockMessageRepository) CreateCitations(ctx context.Context, citations []*entity.ChatCitation) error {
	args := m.Called(ctx, citations)
	return args.Error(0)
}

func (m *mockMessageRepository) FindCitationsByMessageIds(ctx context.Context, messageIds []uuid.UUID) ([]*entity.ChatCitation, error) {
	args := m.Called(ctx, messageIds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ChatCitation), args.Error(1)
}

func TestLoad_ReversesNewestFirstWindow(t *testing.T) {
	repo := new(mockMessageRepository)
	sessionId := uuid.New()
	base := time.Now()

	// Repository returns newest first, the way the query orders them.
	newestFirst := []*entity.ChatMessage{
		{Id: uuid.New(), Role: constant.ChatMessageRoleAssistant, Content: "third answer", CreatedAt: base.Add(3 * time.Minute)},
		{Id: uuid.New(), Role: constant.ChatMessageRoleUser, Content: "third question", CreatedAt: base.Add(2 * time.Minute)},
		{Id: uuid.New(), Role: constant.ChatMessageRoleAssistant, Content: "second answer", CreatedAt: base.Add(time.Minute)},
		{Id: uuid.New(), Role: constant.ChatMessageRoleUser, Content: "second question", CreatedAt: base},
	}
	repo.On("FindAll", mock.Anything, mock.Anything).Return(newestFirst, nil)

	loaded, err := NewLoader(repo).Load(context.Background(), sessionId)
	require.NoError(t, err)
	require.Len(t, loaded, 4)

	assert.Equal(t, "second question", loaded[0].Content)
	assert.Equal(t, "second answer", loaded[1].Content)
	assert.Equal(t, "third question", loaded[2].Content)
	assert.Equal(t, "third answer", loaded[3].Content)
}

func TestLoad_WindowQueryShape(t *testing.T) {
	repo := new(mockMessageRepository)
	sessionId := uuid.New()

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(specs []specification.Specification) bool {
		if len(specs) != 3 {
			return false
		}
		bySession, ok := specs[0].(specification.ByChatSessionID)
		if !ok || bySession.ChatSessionID != sessionId {
			return false
		}
		order, ok := specs[1].(specification.OrderBy)
		if !ok || order.Field != "created_at" || !order.Desc {
			return false
		}
		limit, ok := specs[2].(specification.Limit)
		return ok && limit.Count == WindowTurns
	})).Return([]*entity.ChatMessage{}, nil)

	_, err := NewLoader(repo).Load(context.Background(), sessionId)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLoad_EmptySession(t *testing.T) {
	repo := new(mockMessageRepository)
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]*entity.ChatMessage{}, nil)

	loaded, err := NewLoader(repo).Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestLoad_NeverExceedsWindow(t *testing.T) {
	repo := new(mockMessageRepository)

	var window []*entity.ChatMessage
	for i := 0; i < WindowTurns; i++ {
		window = append(window, &entity.ChatMessage{
			Id:        uuid.New(),
			Role:      constant.ChatMessageRoleUser,
			Content:   fmt.Sprintf("turn %d", WindowTurns-i),
			CreatedAt: time.Now().Add(-time.Duration(i) * time.Minute),
		})
	}
	repo.On("FindAll", mock.Anything, mock.Anything).Return(window, nil)

	loaded, err := NewLoader(repo).Load(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Len(t, loaded, WindowTurns)
	assert.Equal(t, "turn 1", loaded[0].Content)
	assert.Equal(t, fmt.Sprintf("turn %d", WindowTurns), loaded[len(loaded)-1].Content)
}
