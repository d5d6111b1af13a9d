package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aioutlet/variant-service/internal/config"
	"github.com/aioutlet/variant-service/internal/handlers"
	"github.com/aioutlet/variant-service/internal/middleware"
	"github.com/aioutlet/variant-service/internal/repository"
	"github.com/aioutlet/variant-service/internal/services"
	"github.com/aioutlet/variant-service/internal/suggest"
	"github.com/aioutlet/variant-service/pkg/clients"
	"github.com/aioutlet/variant-service/pkg/logger"
	"github.com/aioutlet/variant-service/pkg/redis"
	"github.com/aioutlet/variant-service/pkg/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Variant Service API
// @version 1.0
// @description Product draft sessions: option suggestions, variant generation, pricing and stock modes
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.aioutlet.com/support
// @contact.email support@aioutlet.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:1010
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter 'Bearer ' followed by your JWT token

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.Environment, cfg.Name)
	defer log.Sync()

	// Initialize distributed tracing
	tracingCfg := tracing.TracingConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		ServiceVersion: cfg.Tracing.ServiceVersion,
		Environment:    cfg.Environment,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
		Enabled:        cfg.Tracing.Enabled,
		SampleRate:     cfg.Tracing.SampleRate,
	}

	tp, err := tracing.InitTracing(tracingCfg, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer tracing.Shutdown(context.Background(), tp, log)

	// Initialize Redis client
	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))

	// Load option taxonomy
	taxonomy := suggest.DefaultTaxonomy()
	if cfg.Suggest.TaxonomyFile != "" {
		taxonomy, err = suggest.LoadTaxonomyFile(cfg.Suggest.TaxonomyFile)
		if err != nil {
			log.Fatal("Failed to load taxonomy", zap.String("file", cfg.Suggest.TaxonomyFile), zap.Error(err))
		}
	}
	log.Info("Option taxonomy loaded", zap.Int("entries", len(taxonomy.Entries)))

	suggester := suggest.NewSuggester(taxonomy, suggest.Options{
		Threshold:          cfg.Suggest.Threshold,
		MinTokenSimilarity: cfg.Suggest.MinTokenSimilarity,
	}, log)

	// Initialize repository
	draftRepo := repository.NewDraftRepository(redisClient, log)

	// Initialize downstream clients
	productClient := clients.NewProductClient(cfg.Services.ProductServiceURL, cfg.Services.Timeout, log)
	categoryClient := clients.NewCategoryClient(cfg.Services.CategoryServiceURL, cfg.Services.Timeout, log)

	// Initialize services
	draftService := services.NewDraftService(draftRepo, suggester, productClient, categoryClient, cfg, log)

	// Initialize handlers
	draftHandler := handlers.NewDraftHandler(draftService, cfg.Environment, log)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Correlation-ID", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"X-Correlation-ID", "traceparent", "tracestate"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Metrics(cfg.Name))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorLogger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"service":   cfg.Name,
			"timestamp": time.Now().UTC(),
			"version":   cfg.Version,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(cfg.JWT.SecretKey, log))
	{
		v1.GET("/suggestions", draftHandler.GetSuggestions)

		draftRoutes := v1.Group("/drafts")
		{
			draftRoutes.POST("", draftHandler.CreateDraft)
			draftRoutes.POST("/from-product/:productId", draftHandler.OpenProductForEdit)
			draftRoutes.GET("/:draftId", draftHandler.GetDraft)
			draftRoutes.PATCH("/:draftId", draftHandler.UpdateDraft)
			draftRoutes.DELETE("/:draftId", draftHandler.DeleteDraft)
			draftRoutes.PUT("/:draftId/options", draftHandler.SetOptionTypes)
			draftRoutes.PUT("/:draftId/mode", draftHandler.SetMode)
			draftRoutes.POST("/:draftId/variants/generate", draftHandler.GenerateVariants)
			draftRoutes.PATCH("/:draftId/variants/:index", draftHandler.UpdateVariant)
			draftRoutes.DELETE("/:draftId/variants/:index", draftHandler.RemoveVariant)
			draftRoutes.PUT("/:draftId/main-variant", draftHandler.SelectMainVariant)
			draftRoutes.POST("/:draftId/submit", draftHandler.SubmitDraft)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting Variant Service",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Environment))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down Variant Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Variant Service stopped")
}
