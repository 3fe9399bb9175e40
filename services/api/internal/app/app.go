package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidshare/pkg/cache"
	"vidshare/pkg/config"
	"vidshare/pkg/database"
	"vidshare/pkg/jwt"
	"vidshare/pkg/logger"
	"vidshare/pkg/queue"
	"vidshare/pkg/storage"
	apiHTTP "vidshare/services/api/internal/controller/http"
	"vidshare/services/api/internal/model"
	"vidshare/services/api/internal/repo/persistent"
	"vidshare/services/api/internal/usecase"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	store       storage.Store
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.NewWithOptions(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	db, err := database.NewPostgresDB(context.Background(), cfg, log)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(&model.UserModel{}, &model.NotificationModel{}, &model.VideoModel{}); err != nil {
			log.Error("Failed to migrate database: %v", err)
			return nil, err
		}
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis only backs rate limiting and optional view dedup.
		log.Warn("Failed to connect to redis: %v (continuing without rate limiting)", err)
	}

	store, err := storage.New(cfg)
	if err != nil {
		log.Error("Failed to create media store: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without moderation events)", err)
	}

	if cfg.TrustIdentityHeaders {
		log.Warn("TRUST_IDENTITY_HEADERS is enabled: x-user-id and x-admin are accepted without verification")
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		store:       store,
		jwtService:  jwt.NewServiceWithTTL(cfg.JWTSecret, cfg.JWTTTL),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	// Initialize repositories
	userRepo := persistent.NewUserRepository(a.db)
	videoRepo := persistent.NewVideoRepository(a.db)

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		a.jwtService,
		usecase.AdminCredentials{Username: a.cfg.AdminUsername, Password: a.cfg.AdminPassword},
		a.log,
	)
	videoUseCase := usecase.NewVideoUseCase(videoRepo, userRepo, a.store, a.redisClient, a.cfg.ViewDedupWindow, a.log)
	uploadUseCase := usecase.NewUploadUseCase(a.store, a.log)

	var publisher usecase.EventPublisher
	if a.queueClient != nil {
		publisher = a.queueClient
	}
	moderationUseCase := usecase.NewModerationUseCase(videoRepo, authUseCase, a.store, publisher, a.log)

	// Initialize HTTP handlers
	handlers := Handlers{
		Auth:  apiHTTP.NewAuthHandler(authUseCase, uploadUseCase, a.cfg.PublicBaseURL, a.log),
		Video: apiHTTP.NewVideoHandler(videoUseCase, uploadUseCase, a.cfg.PublicBaseURL, a.log),
		Admin: apiHTTP.NewAdminHandler(moderationUseCase, a.log),
	}

	r := NewRouter(a.cfg, a.jwtService, a.redisClient, handlers, func(ctx context.Context) bool {
		return database.Ping(ctx, a.db) == nil
	})

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("API server listening on http://localhost:%s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down API server...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if err := database.Close(a.db); err != nil {
		a.log.Error("Error closing database: %v", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	a.log.Info("API server exited")
	return nil
}
