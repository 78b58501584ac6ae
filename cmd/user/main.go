package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/kantodex/pokedex-backend/internal/docs"
	httpDelivery "github.com/kantodex/pokedex-backend/internal/user/delivery/http"
	"github.com/kantodex/pokedex-backend/internal/user/repository"
	"github.com/kantodex/pokedex-backend/internal/user/usecase/command"
	"github.com/kantodex/pokedex-backend/internal/user/usecase/query"
	"github.com/kantodex/pokedex-backend/pkg/database"
	"github.com/kantodex/pokedex-backend/pkg/logger"
	"github.com/kantodex/pokedex-backend/pkg/tracing"
)

func main() {
	logger.Init("user-service", getEnv("ENV", "development") == "development")

	// Initialize tracing
	tp, err := tracing.InitTracer("user-service")
	if err != nil {
		log.Printf("Warning: Failed to initialize tracing: %v", err)
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				log.Printf("Error shutting down tracer: %v", err)
			}
		}()
	}

	// Load configuration from environment variables
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "pokedexdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database with GORM
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Raw connection for health-check pings
	sqlDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Initialize repository
	repo := repository.NewGormUserRepository(db)
	if err := repo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire up handlers (manual DI)
	handler := httpDelivery.NewUserHandler(
		command.NewRegisterUserHandler(repo),
		command.NewLoginUserHandler(repo),
		query.NewGetUserHandler(repo),
		query.NewListUsersHandler(repo),
		query.NewGetStatsHandler(repo),
	)

	// Setup router
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, sqlDB)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	port := getEnv("HTTP_PORT", "8080")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		log.Printf("🌐 User service starting on port %s", port)
		log.Printf("📊 Prometheus metrics: http://localhost:%s/metrics", port)
		log.Printf("🔐 Auth endpoints: /auth/register, /auth/login")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down user service...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
