package bootstrap

import (
	"context"
	"log"

	"code-playground-be/internal/config"
	"code-playground-be/internal/controller"
	"code-playground-be/internal/pkg/logger"
	"code-playground-be/internal/repository/memory"
	"code-playground-be/internal/repository/unitofwork"
	"code-playground-be/internal/service"
	"code-playground-be/internal/websocket"
	"code-playground-be/pkg/idgen"
	pktNats "code-playground-be/pkg/nats"
	"code-playground-be/pkg/session"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	OAuthController   controller.IOAuthController
	ProjectController controller.IProjectController
	EditorController  controller.IEditorController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	WebSocketHub *websocket.Hub

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/editor.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// In-memory editor session storage
	editorSessions := memory.NewEditorSessionRepository()

	// Live session trackers, so a logout reaches open connections.
	sessionRegistry := session.NewRegistry()

	// Snapshot id generator (shared, monotonic)
	ids := idgen.New()

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.SavedTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.App.SavedTopic, wsHub)

	authService := service.NewAuthService(uowFactory, natsPub, sessionRegistry)
	oauthService := service.NewOAuthService(uowFactory, natsPub)
	projectService := service.NewProjectService(uowFactory, ids, publisherService, natsPub)
	editorService := service.NewEditorService(editorSessions, projectService, wsHub, wsLogger)

	// Activity log worker: drains the external event bus into zap.
	if natsSub != nil {
		activityService := service.NewActivityService(natsSub, sysLogger)
		go func() {
			if err := activityService.Start(); err != nil {
				log.Printf("[WARN] Activity log worker failed to start: %v", err)
			}
		}()
	}

	// 4. Controllers
	return &Container{
		AuthController:    controller.NewAuthController(authService),
		OAuthController:   controller.NewOAuthController(oauthService),
		ProjectController: controller.NewProjectController(projectService),
		EditorController:  controller.NewEditorController(editorService, wsHub, sessionRegistry, wsLogger),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,
		Logger:          sysLogger,
	}
}
