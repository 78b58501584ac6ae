package query

import (
	"github.com/kantodex/pokedex-backend/internal/user/domain"
)

// UserStats holds aggregate counts over the user table
type UserStats struct {
	TotalUsers int64 `json:"total_users"`
}

// GetStatsHandler handles user statistics queries
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the stats query
func (h *GetStatsHandler) Handle() (*UserStats, error) {
	count, err := h.repo.Count()
	if err != nil {
		return nil, err
	}
	return &UserStats{TotalUsers: count}, nil
}
