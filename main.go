package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/Kuhaiku/cabana-2.0/internal/config"
	"github.com/Kuhaiku/cabana-2.0/internal/gallery"
	"github.com/Kuhaiku/cabana-2.0/internal/handlers"
	"github.com/Kuhaiku/cabana-2.0/internal/kafka"
	"github.com/Kuhaiku/cabana-2.0/internal/logger"
	"github.com/Kuhaiku/cabana-2.0/internal/middleware"
	rediswrap "github.com/Kuhaiku/cabana-2.0/internal/redis"
	"github.com/Kuhaiku/cabana-2.0/internal/services"
	"github.com/Kuhaiku/cabana-2.0/internal/storage"

	"github.com/gin-gonic/gin"
)

// Global logger instance
var log *logger.Logger

func main() {
	log = logger.NewLogger()
	defer log.Close()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("ENV", "Error loading .env file, using environment variables")
	}

	log.LogProcess("STARTUP", "Cabana backend starting up...")

	cfg := config.Load()
	log.Info("CONFIG", "Configuration loaded successfully")

	if cfg.AdminPassword == "" {
		log.Fatal("CONFIG", "ADMIN_PASS must be set")
	}

	log.LogProcess("DATABASE", "Initializing MySQL database...")
	store, err := storage.NewMySQLStore(cfg.Database, log)
	if err != nil {
		log.Fatal("DATABASE", "Failed to initialize MySQL: "+err.Error())
	}
	defer store.Close()

	keepaliveCtx, stopKeepalive := context.WithCancel(context.Background())
	defer stopKeepalive()
	store.StartKeepalive(keepaliveCtx, cfg.Database.KeepaliveInterval)
	log.LogDatabase("INIT", "mysql", "MySQL storage initialized, keepalive running")

	// Kafka is optional: without brokers the producer runs in mock mode and
	// only logs the events it would have published.
	mockKafka := len(cfg.Kafka.Brokers) == 0
	kafkaProducer, err := kafka.NewProducer(cfg.Kafka.Brokers, mockKafka, log)
	if err != nil {
		log.Fatal("KAFKA", "Failed to create Kafka producer: "+err.Error())
	}
	defer kafkaProducer.Close()

	var cache *rediswrap.Cache
	if cfg.Redis.Addr != "" {
		cache = rediswrap.NewCache(goredis.NewClient(&goredis.Options{
			Addr: cfg.Redis.Addr,
		}))
		log.LogProcess("REDIS", "Gallery cache enabled at "+cfg.Redis.Addr)
	}

	var galleryLister gallery.Lister
	if cfg.Cloudinary.CloudName != "" {
		cloudinaryGallery, err := gallery.NewCloudinaryGallery(cfg.Cloudinary, log)
		if err != nil {
			log.Fatal("GALLERY", "Failed to initialize Cloudinary: "+err.Error())
		}
		galleryLister = cloudinaryGallery
	} else {
		log.Warn("GALLERY", "CLOUDINARY_CLOUD_NAME not set, gallery will serve empty listings")
	}

	// Initialize services
	orderService := services.NewOrderService(store, kafkaProducer, log)
	reviewService := services.NewReviewService(store, log)
	catalogService := services.NewCatalogService(store, log)
	financeService := services.NewFinanceService(store, log)
	log.LogProcess("SERVICE", "All services initialized")

	// Initialize handlers
	orderHandler := handlers.NewOrderHandler(orderService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	financeHandler := handlers.NewFinanceHandler(financeService)
	galleryHandler := handlers.NewGalleryHandler(galleryLister, cache, log)
	log.LogProcess("HANDLER", "All handlers initialized")

	router := setupRouter(cfg, store, orderHandler, reviewHandler, catalogHandler, financeHandler, galleryHandler)
	log.LogProcess("ROUTER", "HTTP router configured")

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.LogProcess("SERVER", "Starting HTTP server on port "+cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("SERVER", "Server failed to start: "+err.Error())
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Warn("SHUTDOWN", "Received shutdown signal, initiating graceful shutdown...")
	stopKeepalive()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("SHUTDOWN", "Server forced to shutdown: "+err.Error())
	}

	log.Info("SHUTDOWN", "Cabana backend shutdown completed successfully")
}

func setupRouter(
	cfg *config.Config,
	store storage.Store,
	orderHandler *handlers.OrderHandler,
	reviewHandler *handlers.ReviewHandler,
	catalogHandler *handlers.CatalogHandler,
	financeHandler *handlers.FinanceHandler,
	galleryHandler *handlers.GalleryHandler,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.EnhancedLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders(log))
	router.Use(middleware.RateLimit(log))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		code := http.StatusOK
		if err := store.HealthCheck(); err != nil {
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().UTC(),
			"service":   "cabana-backend",
		})
	})

	api := router.Group("/api")
	{
		// Public routes
		api.GET("/itens-disponiveis", catalogHandler.ListAvailable)
		api.POST("/orcamento", orderHandler.Create)
		api.GET("/depoimentos", reviewHandler.ListVisible)
		api.POST("/cliente/avaliar", reviewHandler.Submit)
		api.GET("/galeria", galleryHandler.List)

		// Admin routes, gated by the shared secret
		admin := api.Group("/admin", middleware.AdminAuth(log, cfg.AdminPassword))
		{
			admin.GET("/pedidos", orderHandler.List)
			admin.PUT("/pedidos/:id/aprovar", orderHandler.Approve)
			admin.PUT("/pedidos/:id/concluir", orderHandler.Complete)
			admin.DELETE("/pedidos/:id", orderHandler.Delete)
			admin.GET("/agenda", orderHandler.Agenda)

			admin.GET("/financeiro", financeHandler.Report)
			admin.POST("/financeiro", financeHandler.AddEntry)

			admin.GET("/precos", catalogHandler.ListAll)
			admin.POST("/precos", catalogHandler.Create)
			admin.PUT("/precos/:id/toggle", catalogHandler.Toggle)
			admin.DELETE("/precos/:id", catalogHandler.Delete)
		}
	}

	log.LogProcess("ROUTER", "All routes registered successfully")
	return router
}
