package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hostel-service/internal/handler"
	mid "hostel-service/internal/middleware"
	"hostel-service/internal/repository"
	"hostel-service/internal/service"
	"hostel-service/pkg/config"
	"hostel-service/pkg/database"
	"hostel-service/pkg/jwtutil"
	"hostel-service/pkg/logger"
	"hostel-service/prometheus"
)

func main() {
	// Load .env file; a missing file is fine in environments where the
	// variables come from the process environment.
	_ = godotenv.Load()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting hostel-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Connect to the database; the handle is passed to every consumer
	// explicitly.
	db, err := database.Connect(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Wire the store, services and handlers
	store := repository.NewStore(db)
	occupancy := service.NewOccupancyManager(log)
	roomService := service.NewRoomService(store, log)
	studentService := service.NewStudentService(store, occupancy, log)
	presenceService := service.NewPresenceService(store, log)
	paymentService := service.NewPaymentService(store, log)

	roomHandler := handler.NewRoomHandler(roomService)
	studentHandler := handler.NewStudentHandler(studentService, presenceService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	// Initialize Echo instance
	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	roomHandler.Register(e.Group("/rooms"))
	studentHandler.Register(e.Group("/students"))
	paymentHandler.Register(e.Group("/payments"))

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
