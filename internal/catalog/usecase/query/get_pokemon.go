package query

import (
	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// GetPokemonQuery represents the query for a single merged view
type GetPokemonQuery struct {
	ID     int
	UserID string // empty for anonymous callers
}

// GetPokemonHandler handles the single-pokemon view query
type GetPokemonHandler struct {
	catalog   domain.CatalogRepository
	favorites domain.FavoriteRepository
	votes     domain.VoteRepository
}

// NewGetPokemonHandler creates a new get pokemon handler
func NewGetPokemonHandler(
	catalog domain.CatalogRepository,
	favorites domain.FavoriteRepository,
	votes domain.VoteRepository,
) *GetPokemonHandler {
	return &GetPokemonHandler{catalog: catalog, favorites: favorites, votes: votes}
}

// Handle executes the get pokemon query
func (h *GetPokemonHandler) Handle(q GetPokemonQuery) (*domain.PokemonView, error) {
	p, err := h.catalog.FindByID(q.ID)
	if err != nil {
		return nil, err
	}

	view := p.NeutralView()
	if q.UserID == "" {
		return &view, nil
	}

	view.IsFavorite, err = h.favorites.IsFavorite(q.UserID, q.ID)
	if err != nil {
		return nil, err
	}
	vote, err := h.votes.Find(q.UserID, q.ID)
	if err != nil {
		return nil, err
	}
	view.UserVote = int(vote)
	return &view, nil
}
