package bootstrap

import (
	"context"
	"log"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"docuchat-be/internal/config"
	"docuchat-be/internal/controller"
	"docuchat-be/internal/pkg/logger"
	"docuchat-be/internal/pkg/mailer"
	"docuchat-be/internal/pkg/serverutils"
	"docuchat-be/internal/repository/implementation"
	"docuchat-be/internal/repository/memory"
	"docuchat-be/internal/repository/unitofwork"
	"docuchat-be/internal/service"
	"docuchat-be/internal/websocket"
	"docuchat-be/pkg/chunker"
	"docuchat-be/pkg/embedding"
	"docuchat-be/pkg/llm/factory"
	pktNats "docuchat-be/pkg/nats"
	"docuchat-be/pkg/rag/retrieval"
	"docuchat-be/pkg/storage"
)

type Container struct {
	// Controllers
	AuthController      controller.IAuthController
	OAuthController     controller.IOAuthController
	WorkspaceController controller.IWorkspaceController
	DocumentController  controller.IDocumentController
	AnswerController    controller.IAnswerController
	FileController      controller.IFileController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	// Shared system logger, used by the server's error handler.
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)

	store, err := storage.NewLocalStore(cfg.Storage.BaseDir)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize file storage: %v", err)
	}
	signer := storage.NewURLSigner(cfg.Storage.URLSecret, cfg.App.BaseURL)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIApiKey, cfg.Ai.OpenAIEmbedModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIEmbedModel)
	} else {
		embeddingProvider = embedding.NewAzureProvider(
			cfg.Ai.AzureEndpoint,
			cfg.Ai.AzureApiKey,
			cfg.Ai.AzureEmbedDeploy,
			cfg.Ai.AzureEmbedVersion,
		)
		log.Printf("[INFO] Using Embedding Provider: AZURE (%s)", cfg.Ai.AzureEmbedDeploy)
	}

	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:        cfg.Ai.LLMProvider,
		AzureEndpoint:   cfg.Ai.AzureEndpoint,
		AzureApiKey:     cfg.Ai.AzureApiKey,
		AzureDeployment: cfg.Ai.AzureChatDeploy,
		AzureApiVersion: cfg.Ai.AzureChatVersion,
		OllamaBaseURL:   cfg.Ai.OllamaBaseURL,
		OllamaModel:     cfg.Ai.OllamaModel,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.LLMProvider)

	// In-memory guest session cache
	sessionCache := memory.NewGuestSessionCache()

	// 4. Infrastructure: NATS and Redis are optional; the pipeline runs
	// without them, only cross-process notifications are lost.
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub with its own log file: status pushes are chatty.
	wsLogger := logger.NewIsolatedLogger("logs/push.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Retrieval stack
	chunkSearcher := implementation.NewDocumentChunkRepository(db)
	retriever := retrieval.NewRetriever(embeddingProvider, chunkSearcher, sysLogger)

	chunkCfg := chunker.Config{
		ChunkTokens:   cfg.Limits.ChunkTokens,
		OverlapTokens: cfg.Limits.OverlapTokens,
	}

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.EmbedDocumentsTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ai.EmbedDocumentsTopic,
		uowFactory,
		embeddingProvider,
		cfg.Ai.EmbedBatchSize,
		wsHub,
		natsPub,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory, sessionCache)
	guestVerifier := service.NewGuestSessionVerifier(uowFactory, sessionCache, sysLogger)
	sessionMiddleware := serverutils.NewSessionMiddleware(guestVerifier)
	oauthService := service.NewOAuthService(
		uowFactory,
		cfg.OAuth.GoogleClientID,
		cfg.OAuth.GoogleClientSecret,
		cfg.OAuth.GoogleRedirectURL,
	)
	workspaceService := service.NewWorkspaceService(uowFactory, store, cfg.Limits, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		publisherService,
		store,
		signer,
		natsPub,
		chunkCfg,
		cfg.Limits,
		sysLogger,
	)
	answerService := service.NewAnswerService(uowFactory, retriever, llmProvider, sysLogger)
	summaryService := service.NewSummaryService(uowFactory, llmProvider, emailService, natsPub, sysLogger)
	chatHistoryService := service.NewChatHistoryService(uowFactory)

	// 7. Controllers
	return &Container{
		AuthController:      controller.NewAuthController(authService, sessionMiddleware),
		OAuthController:     controller.NewOAuthController(oauthService),
		WorkspaceController: controller.NewWorkspaceController(workspaceService, sessionMiddleware),
		DocumentController:  controller.NewDocumentController(documentService, summaryService, chatHistoryService, sessionMiddleware),
		AnswerController:    controller.NewAnswerController(answerService, sessionMiddleware),
		FileController:      controller.NewFileController(store, signer),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}
