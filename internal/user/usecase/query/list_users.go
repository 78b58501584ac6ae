package query

import (
	"github.com/kantodex/pokedex-backend/internal/user/domain"
)

// ListUsersQuery represents the query to list users with pagination
type ListUsersQuery struct {
	Limit  int
	Offset int
}

// ListUsersHandler handles list users queries
type ListUsersHandler struct {
	repo domain.UserRepository
}

// NewListUsersHandler creates a new list users handler
func NewListUsersHandler(repo domain.UserRepository) *ListUsersHandler {
	return &ListUsersHandler{repo: repo}
}

// Handle executes the list users query
func (h *ListUsersHandler) Handle(q ListUsersQuery) ([]domain.User, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return h.repo.FindAll(limit, q.Offset)
}
