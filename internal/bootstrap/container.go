package bootstrap

import (
	"log"

	"ai-storevision-be/internal/config"
	"ai-storevision-be/internal/controller"
	"ai-storevision-be/internal/pkg/logger"
	"ai-storevision-be/internal/service"
	"ai-storevision-be/pkg/filestore"
	"ai-storevision-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	StoreController     controller.IStoreController
	AssistantController controller.IAssistantController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	publisherService := service.NewPublisherService(pubSub, sysLogger)
	consumerService := service.NewConsumerService(pubSub, sysLogger)

	// 3. Persistence
	store := filestore.New(cfg.Store.DataDir)
	storeService := service.NewStoreService(store, publisherService, sysLogger)

	// 4. AI Gateway
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, cfg.Ai.Model)

	assistantService := service.NewAssistantService(llmProvider, cfg.Ai.FallbackModel, sysLogger)

	return &Container{
		StoreController:     controller.NewStoreController(storeService),
		AssistantController: controller.NewAssistantController(assistantService),
		ConsumerService:     consumerService,
		Logger:              sysLogger,
	}
}
