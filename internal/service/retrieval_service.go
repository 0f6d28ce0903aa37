package service

import (
	"context"

	"doc-collab-be/internal/dto"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/pkg/rag/search"
	"doc-collab-be/pkg/store"
)

type RetrievalService interface {
	Search(ctx context.Context, request *dto.SearchRequest) (*dto.SearchResponse, error)
}

type retrievalService struct {
	orchestrator *search.Orchestrator
	log          logger.ILogger
}

func NewRetrievalService(orchestrator *search.Orchestrator, log logger.ILogger) RetrievalService {
	return &retrievalService{
		orchestrator: orchestrator,
		log:          log,
	}
}

func (s *retrievalService) Search(ctx context.Context, request *dto.SearchRequest) (*dto.SearchResponse, error) {
	result, err := s.orchestrator.Retrieve(ctx, search.Request{
		DocumentId: request.DocumentId,
		Query:      request.Query,
		Method:     request.Method,
		Limit:      request.Limit,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("retrieval.search", "search completed", map[string]interface{}{
		"document_id": request.DocumentId.String(),
		"method":      result.MethodUsed,
		"results":     len(result.Results),
	})

	results := result.Results
	if results == nil {
		results = []store.SearchResult{}
	}

	return &dto.SearchResponse{
		Results: results,
		Metadata: dto.SearchMetadata{
			Method: result.MethodUsed,
			Query:  request.Query,
		},
	}, nil
}
