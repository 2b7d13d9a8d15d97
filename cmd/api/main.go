package main

import (
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

	"prepverse/ai-interviewer/internal/config"
	"prepverse/ai-interviewer/internal/handlers"
	"prepverse/ai-interviewer/internal/middleware"
	"prepverse/ai-interviewer/internal/repositories"
	"prepverse/ai-interviewer/internal/services"
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
	userRepo := repositories.NewUserRepository(db)
	resumeRepo := repositories.NewResumeRepository(db)
	testRepo := repositories.NewTestRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	extractor := services.NewResumeExtractor()
	prompts := services.NewPromptBuilder()
	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Expiration)
	executor := services.NewCodeExecutionService(cfg.Piston.URL, cfg.Piston.Timeout)
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userRepo, tokenService)
	resumeHandler := handlers.NewResumeHandler(
		resumeRepo,
		storageService,
		pdfParser,
		extractor,
		cfg.Storage.MaxFileSize,
	)
	questionHandler := handlers.NewQuestionHandler(testRepo, geminiService, prompts)
	feedbackHandler := handlers.NewFeedbackHandler(testRepo, geminiService, prompts)
	codeHandler := handlers.NewCodeHandler(testRepo, executor)
	chatHandler := handlers.NewChatHandler(chatRepo, geminiService)
	progressHandler := handlers.NewProgressHandler(testRepo)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "AI Interviewer API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
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

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Public routes
	app.Post("/signup", authHandler.HandleSignup)
	app.Post("/login", authHandler.HandleLogin)

	// Authenticated routes
	auth := middleware.AuthRequired(tokenService, userRepo)

	app.Post("/parse-resume", auth, resumeHandler.HandleParseResume)
	app.Post("/save-resume", auth, resumeHandler.HandleSaveResume)
	app.Get("/get-resume", auth, resumeHandler.HandleGetResume)

	app.Post("/generate-questions", auth, questionHandler.HandleGenerateQuestions)
	app.Post("/follow-up", auth, questionHandler.HandleFollowUp)
	app.Post("/generate-aptitude", auth, questionHandler.HandleGenerateAptitude)
	app.Post("/generate-coding", auth, questionHandler.HandleGenerateCoding)
	app.Post("/generate-feedback", auth, feedbackHandler.HandleGenerateFeedback)

	app.Post("/run-code", auth, codeHandler.HandleRunCode)
	app.Post("/submit-code", auth, codeHandler.HandleSubmitCode)

	app.Post("/api/chat", auth, chatHandler.HandleChat)
	app.Get("/api/progress/:username", auth, progressHandler.HandleGetProgress)
	app.Get("/api/test-questions/:test_id", auth, progressHandler.HandleGetTestQuestions)
	app.Get("/protected", auth, progressHandler.HandleProtected)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "AI Interviewer API",
			"version": "1.0.0",
		})
	})

	// Unmatched routes
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found",
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
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
	})
}
