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
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"clarivue/fitscore/internal/config"
	"clarivue/fitscore/internal/handlers"
	"clarivue/fitscore/internal/repositories"
	"clarivue/fitscore/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	resumeRepo := repositories.NewResumeRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	matchRepo := repositories.NewMatchRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	parser := services.NewDocumentParserService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize job index
	jobIndex, err := services.NewJobIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := jobIndex.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize domain services
	resumeService := services.NewResumeService(
		resumeRepo,
		parser,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
	)
	jobService := services.NewJobService(
		jobRepo,
		geminiService,
		jobIndex,
		cfg.Worker.RetryMaxAttempts,
	)
	matchService := services.NewMatchService(
		matchRepo,
		resumeRepo,
		jobRepo,
		geminiService,
		cfg.Worker.RetryMaxAttempts,
	)
	analysisService := services.NewAnalysisService(resumeRepo, jobRepo, matchService)
	log.Println("✅ Domain services initialized")

	// Initialize worker
	worker := services.NewWorker(
		matchRepo,
		matchService,
		cfg.Worker.Concurrency,
	)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(
		resumeService,
		matchService,
		storageService,
		cfg.Storage.MaxFileSize,
	)
	jobHandler := handlers.NewJobHandler(jobService, worker)
	analysisHandler := handlers.NewAnalysisHandler(analysisService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Fitscore API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
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

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	jobs := api.Group("/jobs")
	jobs.Post("/upload", jobHandler.HandleUpload)
	jobs.Post("/process-enhanced", jobHandler.HandleProcessEnhanced)
	jobs.Get("/search", jobHandler.HandleSearch)
	jobs.Get("/", jobHandler.HandleList)
	jobs.Get("/:id", jobHandler.HandleGet)
	jobs.Put("/:id", jobHandler.HandleUpdate)
	jobs.Delete("/:id", jobHandler.HandleDelete)

	resumes := api.Group("/resumes")
	resumes.Post("/process-enhanced", resumeHandler.HandleProcessEnhanced)
	resumes.Post("/analyze-match", resumeHandler.HandleAnalyzeMatch)
	resumes.Post("/improve", resumeHandler.HandleImprove)
	resumes.Get("/:id/matches", resumeHandler.HandleMatchHistory)
	resumes.Get("/:id", resumeHandler.HandleGet)

	analysis := api.Group("/analysis")
	analysis.Get("/dashboard/:resume_id", analysisHandler.HandleDashboard)
	analysis.Get("/bulk-analysis/:resume_id", analysisHandler.HandleBulkAnalysis)
	analysis.Get("/comparison", analysisHandler.HandleComparison)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Fitscore API",
			"version": "2.0.0",
			"endpoints": []string{
				"POST /api/v1/jobs/upload",
				"POST /api/v1/jobs/process-enhanced",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/search",
				"GET /api/v1/jobs/:id",
				"PUT /api/v1/jobs/:id",
				"DELETE /api/v1/jobs/:id",
				"POST /api/v1/resumes/process-enhanced",
				"POST /api/v1/resumes/analyze-match",
				"POST /api/v1/resumes/improve",
				"GET /api/v1/resumes/:id",
				"GET /api/v1/resumes/:id/matches",
				"GET /api/v1/analysis/dashboard/:resume_id",
				"GET /api/v1/analysis/bulk-analysis/:resume_id",
				"GET /api/v1/analysis/comparison",
			},
		})
	})

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
