package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	httpDelivery "github.com/kantodex/pokedex-backend/internal/catalog/delivery/http"
	_ "github.com/kantodex/pokedex-backend/internal/docs"
	"github.com/kantodex/pokedex-backend/internal/catalog/repository"
	"github.com/kantodex/pokedex-backend/internal/catalog/seed"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/command"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/query"
	"github.com/kantodex/pokedex-backend/kafka"
	"github.com/kantodex/pokedex-backend/pkg/database"
	"github.com/kantodex/pokedex-backend/pkg/logger"
	"github.com/kantodex/pokedex-backend/pkg/tracing"
)

func main() {
	logger.Init("catalog-service", getEnv("ENV", "development") == "development")

	// Initialize tracing
	tp, err := tracing.InitTracer("catalog-service")
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

	// Initialize repositories
	catalogRepo := repository.NewGormCatalogRepositoryWithTracing(db)
	if err := catalogRepo.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	favoriteRepo := repository.NewGormFavoriteRepository(db)
	voteRepo := repository.NewGormVoteRepository(db)
	txManager := repository.NewGormTxManager(db)

	// Seed the catalog before accepting traffic
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancelSeed()
	seeder := seed.NewSeeder(catalogRepo, seed.NewClient(getEnv("POKEAPI_URL", seed.DefaultBaseURL)))
	if err := seeder.Run(seedCtx); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Kafka publisher is optional: without brokers the service still
	// serves, it just stops feeding the trending ranking.
	var publisher *kafka.Publisher
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(brokers, ","))
		if err != nil {
			log.Printf("Warning: Kafka unavailable, events disabled: %v", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Wire up handlers (manual DI)
	toggleFavorite := command.NewToggleFavoriteHandler(catalogRepo, favoriteRepo)
	castVote := command.NewCastVoteHandler(txManager, catalogRepo, favoriteRepo, voteRepo)
	getPokemon := query.NewGetPokemonHandler(catalogRepo, favoriteRepo, voteRepo)
	listPokemon := query.NewListPokemonHandler(catalogRepo, favoriteRepo, voteRepo)
	listFavorites := query.NewListFavoritesHandler(listPokemon)
	getStats := query.NewGetStatsHandler(catalogRepo)

	handler := httpDelivery.NewCatalogHandler(
		toggleFavorite, castVote,
		getPokemon, listPokemon, listFavorites, getStats,
		publisher,
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

	port := getEnv("HTTP_PORT", "8081")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		log.Printf("🌐 Catalog service starting on port %s", port)
		log.Printf("📊 Prometheus metrics: http://localhost:%s/metrics", port)
		log.Printf("📖 Swagger docs: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down catalog service...")
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
