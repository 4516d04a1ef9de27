package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"asistente/internal/config"
	"asistente/internal/handler"
	"asistente/internal/repository"
	"asistente/internal/service"
	"asistente/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zl, err := logger.New(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	zl.Info("Módulo IA WhatsApp Inmobiliario",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		zl.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer repo.Close()

	zl.Info("Connected to PostgreSQL database")

	// Initialize the OpenAI-compatible client (Ollama/Mistral by default)
	openaiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if cfg.OpenAI.Enabled {
		zl.Info("Generative backend initialized",
			zap.String("api_base", cfg.OpenAI.APIBase),
			zap.String("chat_model", cfg.OpenAI.ChatModel),
		)
	} else {
		zl.Warn("Generative backend disabled - context answers will fall back to templates")
	}

	// Initialize services
	ragService := service.NewRAGService(repo, openaiClient, &cfg.RAG, zl)
	suggestionService := service.NewSuggestionService(repo, zl)
	classifier := service.NewIntentClassifier(
		ragService,
		suggestionService,
		cfg.RAG.MaxSuggestions,
		cfg.RAG.HistoryTurns,
		zl,
	)
	extractor := service.NewPreferenceExtractor(zl)
	propertyService := service.NewPropertyService(repo, openaiClient, zl)

	zl.Info("Services initialized")

	// Initialize handlers
	queryHandler := handler.NewQueryHandler(classifier, repo, zl)
	preferenceHandler := handler.NewPreferenceHandler(extractor)
	propertyHandler := handler.NewPropertyHandler(propertyService)
	embeddingHandler := handler.NewEmbeddingHandler(repo)
	healthHandler := handler.NewHealthHandler(suggestionService, cfg.OpenAI.ChatModel, cfg.OpenAI.Enabled)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration for the WhatsApp pipeline services
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Service banner
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Módulo IA WhatsApp activo",
			"service": "ia-module",
			"version": Version,
			"endpoints": gin.H{
				"whatsapp":    "/api/ia/process-query",
				"preferences": "/api/ia/analyze-preferences",
				"health":      "/api/ia/health",
			},
		})
	})

	// Health check for the gateway
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"success": true,
			"service": "ia-module",
			"status":  "healthy",
			"port":    cfg.Server.Port,
		})
	})

	// IA module routes
	apiIA := router.Group("/api/ia")
	{
		apiIA.POST("/process-query", queryHandler.ProcessQuery)
		apiIA.POST("/analyze-preferences", preferenceHandler.AnalyzePreferences)
		apiIA.GET("/property-info/:id", propertyHandler.GetPropertyInfo)
		apiIA.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
		apiIA.GET("/health", healthHandler.Check)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	zl.Info("Starting server", zap.String("addr", addr))

	go func() {
		if err := router.Run(addr); err != nil {
			zl.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("Shutting down server")
}
