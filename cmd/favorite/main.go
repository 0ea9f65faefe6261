package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/troyan365/marketplace/docs"
	"github.com/troyan365/marketplace/internal/favorite"
	httpDelivery "github.com/troyan365/marketplace/internal/favorite/delivery/http"
	"github.com/troyan365/marketplace/internal/favorite/repository"
	"github.com/troyan365/marketplace/internal/favorite/usecase/command"
	"github.com/troyan365/marketplace/kafka"
	"github.com/troyan365/marketplace/pkg/database"
	"github.com/troyan365/marketplace/pkg/logger"
	"github.com/troyan365/marketplace/pkg/redisclient"
	"github.com/troyan365/marketplace/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "favorite-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting favorite service")

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
		DBName:   getEnv("DB_NAME", "favoritedb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	repo := repository.NewGormFavoriteRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Redis holds the device-local favorite sets
	rdb, err := redisclient.New(redisclient.Config{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       0,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Kafka publisher for reconciliation outcome events
	var publisher command.ReconcilePublisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	kafkaPublisher, err := kafka.NewPublisher(brokers)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka publisher unavailable, outcome events disabled")
	} else {
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Initialize handler with Wire DI
	listingServiceURL := getEnv("LISTING_SERVICE_URL", "http://localhost:8081")
	favoriteHandler, err := favorite.InitializeHTTPHandler(db, rdb, listingServiceURL, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Consume sign-in events: each successful login triggers one
	// reconciliation run for that user and device. A single consumer group
	// keeps runs per user serialized across replicas.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	startSignInConsumer(ctx, brokers, favoriteHandler)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	startHTTPServer(favoriteHandler, db, rdb, httpPort)

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")
}

func startSignInConsumer(ctx context.Context, brokers []string, favoriteHandler *httpDelivery.FavoriteHandler) {
	consumer, err := kafka.NewConsumer(brokers, "favorite-service", []string{kafka.TopicUserSignedIn})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Kafka consumer unavailable, sign-in reconciliation disabled")
		return
	}

	reconciler := favoriteHandler.Reconciler()
	consumer.RegisterHandler(kafka.EventTypeUserSignedIn, func(ctx context.Context, event kafka.UserSignedInEvent) error {
		reconciler.Handle(ctx, command.ReconcileFavoritesCommand{
			UserID:   event.UserID,
			DeviceID: event.DeviceID,
		})
		return nil
	})

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
		return
	}

	go func() {
		<-ctx.Done()
		if err := consumer.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close Kafka consumer")
		}
	}()
}

func startHTTPServer(favoriteHandler *httpDelivery.FavoriteHandler, db *gorm.DB, rdb *redis.Client, port string) {
	// Setup router
	router := mux.NewRouter()
	favoriteHandler.RegisterRoutes(router)
	favoriteHandler.RegisterHealthCheck(router, db, rdb)

	// Swagger documentation
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

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
