package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"alfredoptarigan/ai-interviewer/internal/config"
	"alfredoptarigan/ai-interviewer/internal/handlers"
	"alfredoptarigan/ai-interviewer/internal/repositories"
	"alfredoptarigan/ai-interviewer/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	initLogrus(cfg)
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	sessionRepo := repositories.NewSessionRepository(db)
	jobRepo := repositories.NewReportJobRepository(db)
	docRepo := repositories.NewDocumentRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	chunker := services.NewTextChunker()
	log.Println("✅ Services initialized successfully")

	// Initialize embeddings + vector memory
	ctx := context.Background()
	embedder, err := services.NewGeminiEmbedder(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini embedder: %v", err)
	}

	vectorStore, err := services.NewQdrantStore(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}

	memory := services.NewMemoryStore(embedder, vectorStore)
	log.Println("✅ Memory store initialized successfully")

	// Initialize LLM provider gateway: primary first, secondary on failover
	gateway := services.NewProviderGateway(
		cfg.Providers.ChatTimeout,
		services.NewOpenAICompatProvider(cfg.Providers.Primary),
		services.NewOpenAICompatProvider(cfg.Providers.Secondary),
	)
	evaluator := services.NewInterviewEvaluator(gateway)
	log.Println("✅ Provider gateway initialized successfully")

	// Speech-to-text / text-to-speech
	speechService := services.NewSpeechService(cfg.Speech)

	// Report generation pipeline + worker
	reportService := services.NewReportService(jobRepo, sessionRepo, evaluator)
	worker := services.NewWorker(jobRepo, reportService, cfg.Worker.Concurrency)
	worker.Start(ctx)
	log.Println("✅ Report worker started successfully")

	// Initialize handlers
	interviewHandler := handlers.NewInterviewHandler(sessionRepo, evaluator, memory)
	reportHandler := handlers.NewReportHandler(jobRepo, sessionRepo, worker)
	speechHandler := handlers.NewSpeechHandler(speechService)
	uploadHandler := handlers.NewUploadHandler(
		docRepo,
		storageService,
		pdfParser,
		chunker,
		memory,
		cfg.Storage.MaxFileSize,
	)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Mock Interviewer API",
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/sessions", interviewHandler.HandleCreateSession)
	api.Post("/sessions/:id/turns", interviewHandler.HandleTurn)
	api.Get("/sessions/:id/intro", interviewHandler.HandleIntro)
	api.Post("/sessions/:id/report", reportHandler.HandleRequestReport)
	api.Get("/reports/:id", reportHandler.HandleGetReport)
	api.Post("/speech/transcriptions", speechHandler.HandleTranscription)
	api.Post("/speech/synthesis", speechHandler.HandleSynthesis)
	api.Post("/context/upload", uploadHandler.HandleContextUpload)
	api.Get("/context/documents", uploadHandler.HandleListDocuments)
	api.Get("/context/documents/:id", uploadHandler.HandleGetDocument)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func initLogrus(cfg *config.Config) {
	if cfg.Server.Env == "development" {
		logrus.SetLevel(logrus.DebugLevel)
		return
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetLevel(logrus.InfoLevel)
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
