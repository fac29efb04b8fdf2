package bootstrap

import (
	"context"
	"log"

	"campus-share-be/internal/config"
	"campus-share-be/internal/controller"
	"campus-share-be/internal/model"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/internal/repository/contract"
	"campus-share-be/internal/repository/implementation"
	"campus-share-be/internal/repository/memory"
	"campus-share-be/internal/service"
	"campus-share-be/pkg/database"
	"campus-share-be/pkg/llm/factory"

	pktNats "campus-share-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	LibraryController controller.ILibraryController

	// Exposed for main.go to load and run
	LibraryService  service.ILibraryService
	ConsumerService service.IConsumerService
	Logger          logger.ILogger

	closers []func()
}

func NewContainer(cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	eventLogger := logger.NewIsolatedLogger(cfg.App.EventLogFilePath)
	c := &Container{Logger: sysLogger}

	// 1. Blob store
	blobs := c.newBlobRepository(cfg)

	// 2. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(cfg.App.EventTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.App.EventTopic, eventLogger, forwarder)

	// 3. Text generation
	llmProvider, err := factory.NewLLMProvider(factory.Settings{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		GeminiAPIKey:  cfg.Keys.GoogleGemini,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	assistantService := service.NewAssistantService(llmProvider, cfg.Ai.Timeout, sysLogger)

	// 4. Library
	sessions := memory.NewSessionRepository(cfg.App.SessionTTL, cfg.App.SessionTTL/2)
	c.LibraryService = service.NewLibraryService(blobs, sessions, publisherService, assistantService, sysLogger)

	// 5. Controllers
	c.LibraryController = controller.NewLibraryController(c.LibraryService, eventLogger)

	c.closers = append(c.closers, func() {
		_ = eventLogger.Sync()
		_ = sysLogger.Sync()
	})
	return c
}

func (c *Container) newBlobRepository(cfg *config.Config) contract.BlobRepository {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			log.Fatalf("[FATAL] Unable to connect to GORM DB: %v", err)
		}
		if err := db.AutoMigrate(&model.Blob{}); err != nil {
			log.Fatalf("[FATAL] Failed to migrate blob table: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		}
		log.Printf("[INFO] Using blob store: POSTGRES")
		return implementation.NewGormBlobRepository(db)

	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		log.Printf("[INFO] Using blob store: REDIS")
		return implementation.NewRedisBlobRepository(rdb, cfg.Store.RedisPrefix)

	default:
		log.Printf("[INFO] Using blob store: MEMORY (data is lost on restart)")
		return memory.NewBlobRepository()
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
