package bootstrap

import (
	"context"
	"log"

	"doc-collab-be/internal/config"
	"doc-collab-be/internal/controller"
	"doc-collab-be/internal/pkg/logger"
	"doc-collab-be/internal/repository/memory"
	"doc-collab-be/internal/repository/unitofwork"
	"doc-collab-be/internal/service"
	"doc-collab-be/pkg/embedding"
	"doc-collab-be/pkg/llm/factory"
	"doc-collab-be/pkg/rag/history"
	"doc-collab-be/pkg/rag/query"
	"doc-collab-be/pkg/rag/search"
	"doc-collab-be/pkg/rag/session"

	pkgNats "doc-collab-be/pkg/nats"

	"gorm.io/gorm"
)

type Container struct {
	RetrievalController controller.IRetrievalController
	ChatController      controller.IChatController

	Logger    logger.ILogger
	Publisher *pkgNats.Publisher
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbedModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbedModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	baseURL := cfg.Ai.OllamaBaseURL
	if cfg.Ai.LLMProvider == "openai" {
		baseURL = cfg.Ai.OpenAIBaseURL
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// 4. Retrieval pipeline
	baseUow := uowFactory.NewUnitOfWork(context.Background())
	orchestrator := search.NewOrchestrator(
		baseUow.ParagraphRepository(),
		embeddingProvider,
		query.NewAnalyzer(nil),
		cfg.Ai.VectorThreshold,
		sysLogger,
	)
	sessionManager := session.NewManager(baseUow.ChatSessionRepository(), memory.NewSessionCache(), sysLogger)
	historyLoader := history.NewLoader(baseUow.ChatMessageRepository())

	// 5. Services
	retrievalService := service.NewRetrievalService(orchestrator, sysLogger)

	var publisher service.EventPublisher
	if natsPub != nil {
		publisher = natsPub
	}
	chatService := service.NewChatService(
		uowFactory,
		sessionManager,
		historyLoader,
		orchestrator,
		llmProvider,
		publisher,
		sysLogger,
	)

	// 6. Controllers
	retrievalController := controller.NewRetrievalController(retrievalService)
	chatController := controller.NewChatController(chatService, sysLogger)

	return &Container{
		RetrievalController: retrievalController,
		ChatController:      chatController,
		Logger:              sysLogger,
		Publisher:           natsPub,
	}
}
