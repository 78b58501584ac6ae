package trending

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultTopN = 10

// Handler serves the trending ranking over HTTP
type Handler struct {
	tracker *Tracker

	eventsObserved prometheus.Counter
	trackedPokemon prometheus.Gauge
}

// NewHandler creates a new trending handler
func NewHandler(tracker *Tracker) *Handler {
	eventsObserved := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trending_service_events_total",
		Help: "Total number of vote events observed",
	})
	trackedPokemon := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trending_service_tracked_pokemon",
		Help: "Number of pokemon with at least one observed vote",
	})

	prometheus.MustRegister(eventsObserved)
	prometheus.MustRegister(trackedPokemon)

	return &Handler{
		tracker:        tracker,
		eventsObserved: eventsObserved,
		trackedPokemon: trackedPokemon,
	}
}

// ObserveEvent is the kafka consumer callback
func (h *Handler) ObserveEvent() {
	h.eventsObserved.Inc()
	h.trackedPokemon.Set(float64(len(h.tracker.Top(0))))
}

// RegisterRoutes registers the trending routes
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/trending", h.GetTrending).Methods("GET")
}

// GetTrending handles GET /api/trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	n := defaultTopN
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 151 {
			n = parsed
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    h.tracker.Top(n),
	})
}

// RegisterHealthCheck registers the health check endpoint
func (h *Handler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": "Trending service is healthy",
			"events":  h.tracker.Total(),
		})
	}).Methods("GET")
}
