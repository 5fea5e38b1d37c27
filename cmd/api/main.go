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

	"edu2job/career-predictor/internal/config"
	"edu2job/career-predictor/internal/handlers"
	"edu2job/career-predictor/internal/ml"
	"edu2job/career-predictor/internal/repositories"
	"edu2job/career-predictor/internal/services"
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
	exampleRepo := repositories.NewTrainingExampleRepository(db)
	predictionRepo := repositories.NewPredictionRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize model store and load the published artifact pair, if any
	modelStore := services.NewModelStore()
	artifactStore := services.NewArtifactStore(cfg.Model.ArtifactsPath)
	if err := artifactStore.EnsureRoot(); err != nil {
		log.Fatalf("❌ Failed to create artifacts directory: %v", err)
	}

	snapshot, err := artifactStore.LoadPair()
	if err != nil {
		log.Fatalf("❌ Failed to load model artifacts: %v", err)
	}
	if snapshot != nil {
		modelStore.Publish(snapshot)
		log.Printf("✅ Model v%d loaded (%d roles, %d features)\n",
			snapshot.Version, len(snapshot.Forest.Labels), snapshot.FeatureWidth())
	} else {
		log.Println("⚠️  No trained model found. Predictions unavailable until retrain.")
	}

	// Initialize services
	trainerService := services.NewTrainerService(exampleRepo, modelStore, artifactStore, services.TrainerConfig{
		MaxVocabulary: cfg.Model.MaxVocabulary,
		Forest: ml.ForestConfig{
			NumTrees: cfg.Model.ForestSize,
			MaxDepth: cfg.Model.MaxTreeDepth,
			MinLeaf:  cfg.Model.MinLeafSize,
			Seed:     cfg.Model.Seed,
		},
	})
	predictorService := services.NewPredictorService(predictionRepo, modelStore, cfg.Model.TopK)
	ingestService := services.NewIngestService(exampleRepo)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	predictHandler := handlers.NewPredictHandler(predictorService)
	historyHandler := handlers.NewHistoryHandler(predictionRepo)
	retrainHandler := handlers.NewRetrainHandler(trainerService)
	trainingDataHandler := handlers.NewTrainingDataHandler(exampleRepo, ingestService, cfg.Upload.MaxFileSize)
	adminHandler := handlers.NewAdminHandler(predictionRepo, exampleRepo, modelStore)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Career Predictor API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Upload.MaxFileSize),
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
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-User-ID, X-User-Role",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "healthy",
			"model_version": modelStore.Version(),
			"time":          time.Now(),
		})
	})

	// Student endpoints
	authenticated := api.Group("", handlers.RequireUser())
	authenticated.Post("/predict", predictHandler.HandlePredict)
	authenticated.Get("/predictions/history", historyHandler.HandleGetHistory)

	// Admin endpoints
	admin := api.Group("/admin", handlers.RequireUser(), handlers.RequireAdmin())
	admin.Post("/retrain", retrainHandler.HandleRetrain)
	admin.Post("/training-data/upload", trainingDataHandler.HandleUpload)
	admin.Get("/training-data", trainingDataHandler.HandleList)
	admin.Get("/stats", adminHandler.HandleStats)
	admin.Get("/analytics", adminHandler.HandleAnalytics)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Career Predictor API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/predict",
				"GET /api/v1/predictions/history",
				"POST /api/v1/admin/retrain",
				"POST /api/v1/admin/training-data/upload",
				"GET /api/v1/admin/training-data",
				"GET /api/v1/admin/stats",
				"GET /api/v1/admin/analytics",
			},
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
		"code":  code,
	})
}
