package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/command"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/query"
	"github.com/kantodex/pokedex-backend/kafka"
	"github.com/kantodex/pokedex-backend/pkg/logger"
)

// CatalogHandler handles HTTP requests for the pokemon catalog using
// the CQRS pattern
type CatalogHandler struct {
	// Command handlers
	toggleFavoriteHandler *command.ToggleFavoriteHandler
	castVoteHandler       *command.CastVoteHandler

	// Query handlers
	getPokemonHandler    *query.GetPokemonHandler
	listPokemonHandler   *query.ListPokemonHandler
	listFavoritesHandler *query.ListFavoritesHandler
	statsHandler         *query.GetStatsHandler

	publisher *kafka.Publisher // nil when Kafka is disabled

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalVotes     prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler (manual DI)
func NewCatalogHandler(
	toggleFavoriteHandler *command.ToggleFavoriteHandler,
	castVoteHandler *command.CastVoteHandler,
	getPokemonHandler *query.GetPokemonHandler,
	listPokemonHandler *query.ListPokemonHandler,
	listFavoritesHandler *query.ListFavoritesHandler,
	statsHandler *query.GetStatsHandler,
	publisher *kafka.Publisher,
) *CatalogHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to catalog service",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	requestSummary := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	totalVotes := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_votes",
			Help: "Total number of likes plus dislikes across the catalog",
		},
	)

	prometheus.MustRegister(requestCounter)
	prometheus.MustRegister(requestLatency)
	prometheus.MustRegister(requestSummary)
	prometheus.MustRegister(totalVotes)

	return &CatalogHandler{
		toggleFavoriteHandler: toggleFavoriteHandler,
		castVoteHandler:       castVoteHandler,
		getPokemonHandler:     getPokemonHandler,
		listPokemonHandler:    listPokemonHandler,
		listFavoritesHandler:  listFavoritesHandler,
		statsHandler:          statsHandler,
		publisher:             publisher,
		requestCounter:        requestCounter,
		requestLatency:        requestLatency,
		requestSummary:        requestSummary,
		totalVotes:            totalVotes,
	}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	// Read routes: anonymous callers get neutral views
	router.HandleFunc("/api/pokemon", h.metricsMiddleware("/api/pokemon", OptionalAuthMiddleware(h.ListPokemon))).Methods("GET")
	router.HandleFunc("/api/pokemon/stats", h.metricsMiddleware("/api/pokemon/stats", h.GetStats)).Methods("GET")
	router.HandleFunc("/api/pokemon/{id}", h.metricsMiddleware("/api/pokemon/{id}", OptionalAuthMiddleware(h.GetPokemon))).Methods("GET")

	// Authenticated routes
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", AuthMiddleware(h.ListFavorites))).Methods("GET")
	router.HandleFunc("/api/favorites", h.metricsMiddleware("/api/favorites", AuthMiddleware(h.ToggleFavorite))).Methods("POST")
	router.HandleFunc("/api/votes", h.metricsMiddleware("/api/votes", AuthMiddleware(h.CastVote))).Methods("POST")
}

// ListPokemon handles GET /api/pokemon
func (h *CatalogHandler) ListPokemon(w http.ResponseWriter, r *http.Request) {
	q := query.ListPokemonQuery{UserID: UserIDFromContext(r.Context())}

	views, err := h.listPokemonHandler.Handle(q)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to list pokemon")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list pokemon",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: views})
}

// GetPokemon handles GET /api/pokemon/{id}
func (h *CatalogHandler) GetPokemon(w http.ResponseWriter, r *http.Request) {
	id, ok := pokemonID(w, mux.Vars(r)["id"])
	if !ok {
		return
	}

	view, err := h.getPokemonHandler.Handle(query.GetPokemonQuery{
		ID:     id,
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondDomainError(w, err, "Failed to get pokemon")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// ListFavorites handles GET /api/favorites
func (h *CatalogHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	views, err := h.listFavoritesHandler.Handle(query.ListFavoritesQuery{
		UserID: UserIDFromContext(r.Context()),
	})
	if err != nil {
		h.respondDomainError(w, err, "Failed to list favorites")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: views})
}

// ToggleFavorite handles POST /api/favorites
func (h *CatalogHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PokemonID int `json:"pokemonId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.PokemonID <= 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "pokemonId must be a positive integer",
		})
		return
	}

	userID := UserIDFromContext(r.Context())
	isFavorite, err := h.toggleFavoriteHandler.Handle(command.ToggleFavoriteCommand{
		UserID:    userID,
		PokemonID: req.PokemonID,
	})
	if err != nil {
		h.respondDomainError(w, err, "Failed to toggle favorite")
		return
	}

	if h.publisher != nil {
		// Best effort: a failed event never fails the committed toggle.
		if err := h.publisher.PublishFavoriteToggled(r.Context(), kafka.FavoriteToggledEvent{
			UserID:     userID,
			PokemonID:  req.PokemonID,
			IsFavorite: isFavorite,
		}); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish favorite event")
		}
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]bool{"isFavorite": isFavorite},
	})
}

// CastVote handles POST /api/votes
func (h *CatalogHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PokemonID int `json:"pokemonId"`
		Vote      int `json:"vote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}
	if req.PokemonID <= 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "pokemonId must be a positive integer",
		})
		return
	}

	userID := UserIDFromContext(r.Context())
	view, err := h.castVoteHandler.Handle(command.CastVoteCommand{
		UserID:    userID,
		PokemonID: req.PokemonID,
		Vote:      req.Vote,
	})
	if err != nil {
		h.respondDomainError(w, err, "Failed to cast vote")
		return
	}

	h.totalVotes.Set(float64(h.sumVotes()))

	if h.publisher != nil {
		if err := h.publisher.PublishVoteCast(r.Context(), kafka.VoteCastEvent{
			UserID:    userID,
			PokemonID: req.PokemonID,
			Vote:      view.UserVote,
			Likes:     view.Likes,
			Dislikes:  view.Dislikes,
		}); err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to publish vote event")
		}
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: view})
}

// GetStats handles GET /api/pokemon/stats
func (h *CatalogHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to get stats")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to get statistics",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: stats})
}

// RegisterHealthCheck registers the health check endpoint
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// pokemonID parses the path id, writing the 400 response itself when
// the value is not a positive integer.
func pokemonID(w http.ResponseWriter, raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid pokemon ID",
		})
		return 0, false
	}
	return id, true
}

// respondDomainError maps domain errors onto HTTP statuses
func (h *CatalogHandler) respondDomainError(w http.ResponseWriter, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrPokemonNotFound):
		respondJSON(w, http.StatusNotFound, Response{Success: false, Error: "Pokemon not found"})
	case errors.Is(err, domain.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Authorization required"})
	case errors.Is(err, domain.ErrInvalidVote):
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
	case errors.Is(err, domain.ErrVoteConflict):
		// Retries exhausted inside the engine; the client may retry.
		respondJSON(w, http.StatusServiceUnavailable, Response{Success: false, Error: "Temporary conflict, please retry"})
	default:
		logger.Logger.Error().Err(err).Msg(logMsg)
		respondJSON(w, http.StatusInternalServerError, Response{Success: false, Error: logMsg})
	}
}

// sumVotes recomputes the gauge value from the stats query
func (h *CatalogHandler) sumVotes() int {
	stats, err := h.statsHandler.Handle(query.GetStatsQuery{})
	if err != nil {
		return 0
	}
	return stats.TotalLikes + stats.TotalDislikes
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
