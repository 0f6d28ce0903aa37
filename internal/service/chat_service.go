package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"doc-collab-be/internal/apperrors"
	"doc-collab-be/internal/constant"
	"doc-collab-be/internal/dto"
	"doc-collab-be/internal/entity"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/internal/repository/specification"
	"doc-collab-be/internal/repository/unitofwork"
	"doc-collab-be/pkg/events"
	"doc-collab-be/pkg/llm"
	"doc-collab-be/pkg/rag/citation"
	"doc-collab-be/pkg/rag/history"
	"doc-collab-be/pkg/rag/prompt"
	"doc-collab-be/pkg/rag/search"
	"doc-collab-be/pkg/rag/session"
)

// EventPublisher is the slice of the NATS publisher the chat flow needs.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type ChatService interface {
	// Converse runs one batched conversation turn.
	Converse(ctx context.Context, request *dto.ConverseRequest) (*dto.ConverseResponse, error)

	// ConverseStream runs one streamed turn, forwarding each token chunk to
	// onChunk, and returns the terminal payload once generation completes.
	// A failed or cancelled stream persists nothing.
	ConverseStream(ctx context.Context, request *dto.ConverseRequest, onChunk func(chunk string) error) (*dto.StreamTerminal, error)

	GetSessions(ctx context.Context, request *dto.GetSessionsRequest) ([]dto.SessionResponse, error)
	GetSessionMessages(ctx context.Context, sessionId uuid.UUID) ([]dto.MessageResponse, error)
}

type chatService struct {
	repositoryFactory unitofwork.RepositoryFactory
	sessionManager    *session.Manager
	historyLoader     *history.Loader
	orchestrator      *search.Orchestrator
	llmProvider       llm.LLMProvider
	publisher         EventPublisher
	log               logger.ILogger
}

func NewChatService(
	repositoryFactory unitofwork.RepositoryFactory,
	sessionManager *session.Manager,
	historyLoader *history.Loader,
	orchestrator *search.Orchestrator,
	llmProvider llm.LLMProvider,
	publisher EventPublisher,
	log logger.ILogger,
) ChatService {
	return &chatService{
		repositoryFactory: repositoryFactory,
		sessionManager:    sessionManager,
		historyLoader:     historyLoader,
		orchestrator:      orchestrator,
		llmProvider:       llmProvider,
		publisher:         publisher,
		log:               log,
	}
}

// turnContext is everything assembled before generation starts.
type turnContext struct {
	session       *entity.ChatSession
	isNewSession  bool
	document      *entity.Document
	retrieval     *search.Result
	prompt        string
	historyLoaded []*entity.ChatMessage
}

func (s *chatService) prepareTurn(ctx context.Context, request *dto.ConverseRequest) (*turnContext, error) {
	uow := s.repositoryFactory.NewUnitOfWork(ctx)

	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: request.DocumentId})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, apperrors.NewValidationError("document not found: " + request.DocumentId.String())
	}

	sess, isNew, err := s.sessionManager.Resolve(ctx, request.SessionId, request.DocumentId, request.UserId)
	if err != nil {
		return nil, err
	}
	if sess.DocumentId != request.DocumentId {
		return nil, apperrors.NewValidationError("session does not belong to this document")
	}

	var turns []*entity.ChatMessage
	if !isNew {
		turns, err = s.historyLoader.Load(ctx, sess.Id)
		if err != nil {
			return nil, err
		}
	}

	retrieval, err := s.orchestrator.Retrieve(ctx, search.Request{
		DocumentId: request.DocumentId,
		Query:      request.Message,
		Method:     constant.RetrievalMethodHybrid,
	})
	if err != nil {
		return nil, err
	}

	grounding := prompt.Build(prompt.Input{
		DocumentTitle: document.Title,
		History:       turns,
		Passages:      retrieval.Results,
		Question:      request.Message,
	})

	return &turnContext{
		session:       sess,
		isNewSession:  isNew,
		document:      document,
		retrieval:     retrieval,
		prompt:        grounding,
		historyLoaded: turns,
	}, nil
}

// persistTurn writes the user and assistant messages plus citations in one
// transaction. Nothing is persisted if generation failed upstream.
func (s *chatService) persistTurn(ctx context.Context, request *dto.ConverseRequest, tc *turnContext, answer string) (*entity.ChatMessage, []*entity.ChatCitation, error) {
	uow := s.repositoryFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer uow.Rollback()

	userTurn := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: tc.session.Id,
		Role:          constant.ChatMessageRoleUser,
		Content:       request.Message,
	}
	if err := uow.ChatMessageRepository().Create(ctx, userTurn); err != nil {
		return nil, nil, err
	}

	assistantTurn := &entity.ChatMessage{
		Id:            uuid.New(),
		ChatSessionId: tc.session.Id,
		Role:          constant.ChatMessageRoleAssistant,
		Content:       answer,
		Metadata: map[string]interface{}{
			"method":         tc.retrieval.MethodUsed,
			"expanded_query": tc.retrieval.ExpandedQuery,
		},
	}
	if err := uow.ChatMessageRepository().Create(ctx, assistantTurn); err != nil {
		return nil, nil, err
	}

	citations := citation.Build(assistantTurn.Id, tc.retrieval.Results)
	if len(citations) > 0 {
		if err := uow.ChatMessageRepository().CreateCitations(ctx, citations); err != nil {
			return nil, nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, err
	}

	return assistantTurn, citations, nil
}

func (s *chatService) finishTurn(ctx context.Context, request *dto.ConverseRequest, tc *turnContext, assistantTurn *entity.ChatMessage) {
	if tc.isNewSession {
		s.sessionManager.AutosetTitle(ctx, tc.session, request.Message)
	}

	if s.publisher != nil {
		event := events.NewChatTurnCompleted(tc.session.Id, tc.document.Id, assistantTurn.Id, tc.retrieval.MethodUsed)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn("chat.converse", "failed to publish turn-completed event", map[string]interface{}{
				"session_id": tc.session.Id.String(),
				"error":      err.Error(),
			})
		}
	}

	s.log.Info("chat.converse", "turn completed", map[string]interface{}{
		"session_id": tc.session.Id.String(),
		"method":     tc.retrieval.MethodUsed,
		"passages":   len(tc.retrieval.Results),
	})
}

func (s *chatService) Converse(ctx context.Context, request *dto.ConverseRequest) (*dto.ConverseResponse, error) {
	tc, err := s.prepareTurn(ctx, request)
	if err != nil {
		return nil, err
	}

	answer, err := s.llmProvider.Generate(ctx, tc.prompt)
	if err != nil {
		return nil, apperrors.NewGenerationFailed(err)
	}

	assistantTurn, citations, err := s.persistTurn(ctx, request, tc, answer)
	if err != nil {
		return nil, err
	}
	s.finishTurn(ctx, request, tc, assistantTurn)

	return &dto.ConverseResponse{
		Content:   answer,
		Sources:   toSourceDTOs(citations),
		SessionId: tc.session.Id,
	}, nil
}

func (s *chatService) ConverseStream(ctx context.Context, request *dto.ConverseRequest, onChunk func(chunk string) error) (*dto.StreamTerminal, error) {
	tc, err := s.prepareTurn(ctx, request)
	if err != nil {
		return nil, err
	}

	deltas, err := s.llmProvider.ChatStream(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: tc.prompt},
	})
	if err != nil {
		return nil, apperrors.NewGenerationFailed(err)
	}

	var answer strings.Builder
	for delta := range deltas {
		if delta.Err != nil {
			return nil, apperrors.NewGenerationFailed(delta.Err)
		}
		answer.WriteString(delta.Content)
		if err := onChunk(delta.Content); err != nil {
			// The client stopped reading; drop the turn without persisting.
			return nil, err
		}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	assistantTurn, citations, err := s.persistTurn(ctx, request, tc, answer.String())
	if err != nil {
		return nil, err
	}
	s.finishTurn(ctx, request, tc, assistantTurn)

	return &dto.StreamTerminal{
		Sources:   toSourceDTOs(citations),
		SessionId: tc.session.Id,
		Done:      true,
	}, nil
}

func (s *chatService) GetSessions(ctx context.Context, request *dto.GetSessionsRequest) ([]dto.SessionResponse, error) {
	uow := s.repositoryFactory.NewUnitOfWork(ctx)

	sessions, err := uow.ChatSessionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: request.UserId},
		specification.ByDocumentID{DocumentID: request.DocumentId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		responses = append(responses, dto.SessionResponse{
			Id:        sess.Id,
			Title:     sess.Title,
			CreatedAt: sess.CreatedAt,
			UpdatedAt: sess.UpdatedAt,
		})
	}
	return responses, nil
}

func (s *chatService) GetSessionMessages(ctx context.Context, sessionId uuid.UUID) ([]dto.MessageResponse, error) {
	uow := s.repositoryFactory.NewUnitOfWork(ctx)

	sess, err := uow.ChatSessionRepository().FindOne(ctx, specification.ByID{ID: sessionId})
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, apperrors.NewSessionNotFound(sessionId.String())
	}

	messages, err := uow.ChatMessageRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	messageIds := make([]uuid.UUID, 0, len(messages))
	for _, msg := range messages {
		messageIds = append(messageIds, msg.Id)
	}

	citationsByMessage := make(map[uuid.UUID][]dto.SourceDTO)
	if len(messageIds) > 0 {
		citations, err := uow.ChatMessageRepository().FindCitationsByMessageIds(ctx, messageIds)
		if err != nil {
			return nil, err
		}
		for _, c := range citations {
			citationsByMessage[c.ChatMessageId] = append(citationsByMessage[c.ChatMessageId], dto.SourceDTO{
				ParagraphId:  c.ParagraphId,
				SectionTitle: c.SectionTitle,
				Preview:      c.Preview,
			})
		}
	}

	responses := make([]dto.MessageResponse, 0, len(messages))
	for _, msg := range messages {
		responses = append(responses, dto.MessageResponse{
			Id:        msg.Id,
			Role:      msg.Role,
			Content:   msg.Content,
			Metadata:  msg.Metadata,
			Citations: citationsByMessage[msg.Id],
			CreatedAt: msg.CreatedAt,
		})
	}
	return responses, nil
}

func toSourceDTOs(citations []*entity.ChatCitation) []dto.SourceDTO {
	sources := make([]dto.SourceDTO, 0, len(citations))
	for _, c := range citations {
		sources = append(sources, dto.SourceDTO{
			ParagraphId:  c.ParagraphId,
			SectionTitle: c.SectionTitle,
			Preview:      c.Preview,
		})
	}
	return sources
}
