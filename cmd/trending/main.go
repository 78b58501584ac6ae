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

	"github.com/kantodex/pokedex-backend/internal/trending"
	"github.com/kantodex/pokedex-backend/kafka"
	"github.com/kantodex/pokedex-backend/pkg/logger"
	"github.com/kantodex/pokedex-backend/pkg/tracing"
)

func main() {
	logger.Init("trending-service", getEnv("ENV", "development") == "development")

	// Initialize tracing
	tp, err := tracing.InitTracer("trending-service")
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

	tracker := trending.NewTracker()
	handler := trending.NewHandler(tracker)

	// Kafka consumer feeds the tracker
	brokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")
	groupID := getEnv("KAFKA_GROUP_ID", "trending-service")

	consumer, err := kafka.NewConsumer(brokers, groupID, func(ctx context.Context, event kafka.VoteCastEvent) error {
		tracker.Record(event)
		handler.ObserveEvent()
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to create Kafka consumer: %v", err)
	}
	defer consumer.Close()

	consumeCtx, cancelConsume := context.WithCancel(context.Background())
	defer cancelConsume()
	consumer.Start(consumeCtx)

	// Setup router
	router := mux.NewRouter()
	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router)
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	port := getEnv("HTTP_PORT", "8082")
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: c.Handler(router),
	}

	go func() {
		log.Printf("🌐 Trending service starting on port %s", port)
		log.Printf("📊 Prometheus metrics: http://localhost:%s/metrics", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down trending service...")
	cancelConsume()
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
