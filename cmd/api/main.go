package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/task-assistant-team/task-assistant/pkg/validator"

	"github.com/task-assistant-team/task-assistant/internal/adapter/handler"
	"github.com/task-assistant-team/task-assistant/internal/adapter/repository"
	"github.com/task-assistant-team/task-assistant/internal/domain/repositories"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/cache"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/database"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/external/automation"
	httpmw "github.com/task-assistant-team/task-assistant/internal/infrastructure/http/middleware"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/lock"
	"github.com/task-assistant-team/task-assistant/internal/infrastructure/storage"
	"github.com/task-assistant-team/task-assistant/internal/usecase/extraction"
	"github.com/task-assistant-team/task-assistant/internal/usecase/processor"
	"github.com/task-assistant-team/task-assistant/internal/usecase/tasks"
	"github.com/task-assistant-team/task-assistant/internal/usecase/transcripts"
	"github.com/task-assistant-team/task-assistant/pkg/config"
	"github.com/task-assistant-team/task-assistant/pkg/jwt"
)

// @title           Task Assistant API
// @version         1.0
// @description     Extraction and lifecycle engine that turns meeting transcripts into tracked action items

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a service token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Structured logger for services
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	// Initialize repositories. Without a database the engine runs on
	// in-memory repositories, enough for local development and demos.
	var (
		transcriptRepo repositories.TranscriptRepository
		itemRepo       repositories.ActionItemRepository
		executionRepo  repositories.ExecutionLogRepository
	)
	if cfg.Database.Enabled() {
		log.Println("📦 Connecting to database...")
		db, err := database.NewPostgresDB(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.CloseDB(db)

		log.Println("🔄 Running migrations...")
		if err := database.Migrate(db, cfg); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}

		transcriptRepo = repository.NewTranscriptRepository(db)
		itemRepo = repository.NewActionItemRepository(db)
		executionRepo = repository.NewExecutionLogRepository(db)
	} else {
		log.Println("⚠️  DATABASE_URL not set, using in-memory repositories")
		transcriptRepo = repository.NewMemoryTranscriptRepository()
		itemRepo = repository.NewMemoryActionItemRepository()
		executionRepo = repository.NewMemoryExecutionLogRepository()
	}

	// Initialize Redis-backed locking and automation handoff. Without Redis
	// locks are in-process and automation enqueues are logged only.
	var (
		locker  lock.Locker
		gateway repositories.AutomationGateway
	)
	if cfg.Redis.Enabled() {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()

		locker = lock.NewRedisLocker(redisClient, cfg.Tasks.LockTTL, logger)
		gateway = automation.NewRedisGateway(redisClient, logger)
	} else {
		log.Println("⚠️  REDIS_ADDR not set, using in-process locks and log-only automation")
		locker = lock.NewMemoryLocker()
		gateway = automation.NewLogGateway(logger)
	}

	// Initialize transcript archive storage
	var archiver transcripts.Archiver
	if cfg.Storage.Enabled() {
		log.Println("🗄️  Connecting to object storage...")
		archiveStore, err := storage.NewArchiveStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archiver = archiveStore
	} else {
		log.Println("⚠️  MINIO_ENDPOINT not set, transcript archiving disabled")
	}

	// Initialize extraction provider
	log.Println("🤖 Initializing extraction provider...")
	provider, err := extraction.NewProviderFromConfig(&cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize extraction provider: %v", err)
	}
	extractor := extraction.NewClient(provider, cfg.Extraction, logger)

	// Initialize services
	log.Println("⚙️  Initializing services...")
	taskService := tasks.NewTaskService(itemRepo, executionRepo, gateway, &cfg.Tasks, logger)
	processorService := processor.NewProcessorService(transcriptRepo, itemRepo, extractor, taskService, locker, &cfg.Tasks, logger)
	transcriptService := transcripts.NewTranscriptService(transcriptRepo, archiver, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	transcriptHandler := handler.NewTranscriptHandler(transcriptService, processorService, logger)
	actionItemHandler := handler.NewActionItemHandler(taskService, logger)
	webhookHandler := handler.NewWebhookHandler(transcriptService, processorService, cfg.Webhook.Secret, logger)

	// Service token middleware guards state-changing routes when configured
	var mutating []echo.MiddlewareFunc
	if cfg.JWT.Secret != "" {
		log.Println("🔑 Service token authentication enabled")
		jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expiry)
		mutating = append(mutating, httpmw.EchoAuth(jwtManager))
	} else {
		log.Println("⚠️  JWT_SECRET not set, state-changing endpoints are unauthenticated")
	}

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, transcriptHandler, actionItemHandler, webhookHandler, mutating...)
	router.Setup(e)

	// Start processing workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	if err := processorService.StartWorkers(workerCtx, cfg.Tasks.WorkerCount); err != nil {
		log.Fatalf("Failed to start processing workers: %v", err)
	}

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	// Drain in-flight processing runs after the listener is closed
	if err := processorService.StopWorkers(); err != nil {
		log.Printf("⚠️  Worker shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
