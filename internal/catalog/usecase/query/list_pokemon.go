package query

import (
	"fmt"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// ListPokemonQuery represents the query for the merged catalog list.
// UserID is empty for anonymous callers.
type ListPokemonQuery struct {
	UserID string
}

// ListPokemonHandler composes the catalog with the caller's favorites
// and votes. Anonymous callers get neutral views without a single read
// of the relation tables.
type ListPokemonHandler struct {
	catalog   domain.CatalogRepository
	favorites domain.FavoriteRepository
	votes     domain.VoteRepository
}

// NewListPokemonHandler creates a new list pokemon handler
func NewListPokemonHandler(
	catalog domain.CatalogRepository,
	favorites domain.FavoriteRepository,
	votes domain.VoteRepository,
) *ListPokemonHandler {
	return &ListPokemonHandler{catalog: catalog, favorites: favorites, votes: votes}
}

// Handle executes the list pokemon query, ascending by id.
func (h *ListPokemonHandler) Handle(q ListPokemonQuery) ([]domain.PokemonView, error) {
	list, err := h.catalog.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}

	views := make([]domain.PokemonView, 0, len(list))

	if q.UserID == "" {
		for _, p := range list {
			views = append(views, p.NeutralView())
		}
		return views, nil
	}

	favIDs, err := h.favorites.ListIDs(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load favorites: %w", err)
	}
	votesByID, err := h.votes.FindAllForUser(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load votes: %w", err)
	}

	for _, p := range list {
		view := p.NeutralView()
		_, view.IsFavorite = favIDs[p.ID]
		view.UserVote = int(votesByID[p.ID])
		views = append(views, view)
	}
	return views, nil
}
