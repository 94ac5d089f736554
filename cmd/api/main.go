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

	"github.com/cenkalti/backoff/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/davidtran-dev/meeting-notes/internal/adapter/handler"
	"github.com/davidtran-dev/meeting-notes/internal/adapter/repository"
	"github.com/davidtran-dev/meeting-notes/internal/infrastructure/cache"
	"github.com/davidtran-dev/meeting-notes/internal/infrastructure/database"
	extcalendar "github.com/davidtran-dev/meeting-notes/internal/infrastructure/external/calendar"
	"github.com/davidtran-dev/meeting-notes/internal/infrastructure/external/oauth"
	"github.com/davidtran-dev/meeting-notes/internal/infrastructure/storage"
	calendaruse "github.com/davidtran-dev/meeting-notes/internal/usecase/calendar"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/export"
	"github.com/davidtran-dev/meeting-notes/internal/usecase/notes"
	pkgai "github.com/davidtran-dev/meeting-notes/pkg/ai"
	"github.com/davidtran-dev/meeting-notes/pkg/config"
	"github.com/davidtran-dev/meeting-notes/pkg/executor"
	pkgvalidator "github.com/davidtran-dev/meeting-notes/pkg/validator"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()
	e.Validator = pkgvalidator.New()
	e.HideBanner = true
	e.HidePort = false

	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(cfg.Upload.MaxSize))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	log.Println("🔧 Initializing dependencies...")

	// Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; manage schema with sql-migrate in CI/CD")
	}

	// OAuth state store: Redis when configured, in-memory otherwise
	var stateStore cache.Store
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
		stateStore = cache.NewRedisStore(redisClient)
	} else {
		log.Println("📦 Redis not configured, using in-memory state store")
		stateStore = cache.NewMemoryStore()
	}

	// Repositories
	meetingRepo := repository.NewMeetingRepository(db)
	itemRepo := repository.NewActionItemRepository(db)

	// Transcriber backend
	var transcriber notes.TranscriberClient
	switch cfg.TranscriberBackend() {
	case config.TranscriberAssemblyAI:
		log.Println("🎙️ Using AssemblyAI transcription backend")
		transcriber = pkgai.NewAssemblyAITranscriber(&cfg.Assembly)
	default:
		log.Println("🎙️ Using whisper.cpp transcription backend")
		transcriber = pkgai.NewWhisperTranscriber(&cfg.Whisper, executor.New())
	}

	// Ollama LLM client; probe the server at startup and fall back to the
	// first available model when the configured one is missing
	log.Println("🤖 Connecting to Ollama...")
	ollamaClient := pkgai.NewOllamaClient(&cfg.Ollama)
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 30*time.Second)
	probe := func() error { return ollamaClient.ResolveModel(probeCtx) }
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 20 * time.Second
	if err := backoff.Retry(probe, backoff.WithContext(bo, probeCtx)); err != nil {
		log.Printf("⚠️  Ollama connection check failed: %v", err)
	} else {
		log.Printf("✅ Ollama ready, model: %s", ollamaClient.Model())
	}
	cancelProbe()

	// Optional audio archive
	var archiver notes.AudioArchiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to MinIO...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to MinIO: %v", err)
		}
		archiver = minioClient
		log.Println("✅ Audio archive enabled")
	}

	// Pipeline service
	summarizer := notes.NewSummarizer(ollamaClient)
	notesService := notes.NewService(transcriber, summarizer, meetingRepo, itemRepo, archiver, logger)

	// Calendar integration
	log.Println("🔐 Initializing Google Calendar OAuth...")
	if !cfg.CalendarConfigured() {
		log.Println("⚠️  Google credentials not found. Calendar integration disabled until configured.")
	}
	googleProvider := oauth.NewGoogleProvider(
		cfg.OAuth.Google.ClientID,
		cfg.OAuth.Google.ClientSecret,
		cfg.OAuth.Google.RedirectURL,
		cfg.Calendar.TokenFile,
	)
	stateManager := oauth.NewStateManager(stateStore)
	newCreator := func(ctx context.Context) (calendaruse.EventCreator, error) {
		src, err := googleProvider.TokenSource(ctx)
		if err != nil {
			return nil, err
		}
		return extcalendar.NewClient(src), nil
	}
	calendarService := calendaruse.NewService(
		itemRepo,
		googleProvider,
		stateManager,
		newCreator,
		cfg.Calendar.TimeZone,
		logger,
	)

	// Handlers and routes
	meetingHandler := handler.NewMeetingHandler(notesService, cfg.Upload.Dir, cfg.Upload.AllowedExtensions, logger)
	exportHandler := handler.NewExportHandler(notesService, export.NewRenderer(), logger)
	calendarHandler := handler.NewCalendarHandler(calendarService, logger)

	router := handler.NewRouter(meetingHandler, exportHandler, calendarHandler)
	router.Setup(e)

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
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("✅ Server exited")
}
