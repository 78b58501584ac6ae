package query

import (
	"fmt"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// GetStatsQuery represents the query for catalog-wide statistics
type GetStatsQuery struct{}

// CatalogStats holds aggregate catalog statistics
type CatalogStats struct {
	TotalPokemon  int64 `json:"total_pokemon"`
	TotalLikes    int   `json:"total_likes"`
	TotalDislikes int   `json:"total_dislikes"`
}

// GetStatsHandler handles the catalog stats query
type GetStatsHandler struct {
	catalog domain.CatalogRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(catalog domain.CatalogRepository) *GetStatsHandler {
	return &GetStatsHandler{catalog: catalog}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle(q GetStatsQuery) (*CatalogStats, error) {
	count, err := h.catalog.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count pokemon: %w", err)
	}
	list, err := h.catalog.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	stats := &CatalogStats{TotalPokemon: count}
	for _, p := range list {
		stats.TotalLikes += p.Likes
		stats.TotalDislikes += p.Dislikes
	}
	return stats, nil
}
