package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/troyan365/marketplace/docs"
	"github.com/troyan365/marketplace/internal/listing"
	httpDelivery "github.com/troyan365/marketplace/internal/listing/delivery/http"
	"github.com/troyan365/marketplace/internal/listing/repository"
	"github.com/troyan365/marketplace/internal/listing/storage"
	"github.com/troyan365/marketplace/pkg/database"
	"github.com/troyan365/marketplace/pkg/logger"
	"github.com/troyan365/marketplace/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "listing-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting listing service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "listingdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	repo := repository.NewPostgresListingRepository(db)
	if err := repo.InitSchema(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Photo storage
	blobs, err := storage.NewDiskStore(
		getEnv("PHOTO_STORAGE_DIR", "./data/photos"),
		getEnv("PHOTO_BASE_URL", "http://localhost:8081/photos"),
	)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize photo storage")
	}

	// Initialize handler with Wire DI
	listingHandler, err := listing.InitializeHTTPHandler(db, blobs)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8081")
	startHTTPServer(listingHandler, db, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(listingHandler *httpDelivery.ListingHandler, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()
	listingHandler.RegisterRoutes(router)
	listingHandler.RegisterHealthCheck(router, db)

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Serve uploaded photos
	photoDir := getEnv("PHOTO_STORAGE_DIR", "./data/photos")
	router.PathPrefix("/photos/").Handler(
		http.StripPrefix("/photos/", http.FileServer(http.Dir(photoDir))),
	)

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	go func() {
		logger.Logger.Info().
			Str("port", port).
			Msg("HTTP server starting")
		if err := http.ListenAndServe(":"+port, c.Handler(router)); err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
