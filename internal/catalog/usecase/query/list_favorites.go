package query

import (
	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// ListFavoritesQuery represents the query for a user's favorite views
type ListFavoritesQuery struct {
	UserID string
}

// ListFavoritesHandler returns the merged catalog filtered to the
// caller's favorites. It reuses the full merged list and filters it, so
// the result keeps catalog order (ascending id), not favoriting order.
type ListFavoritesHandler struct {
	list *ListPokemonHandler
}

// NewListFavoritesHandler creates a new list favorites handler
func NewListFavoritesHandler(list *ListPokemonHandler) *ListFavoritesHandler {
	return &ListFavoritesHandler{list: list}
}

// Handle executes the list favorites query
func (h *ListFavoritesHandler) Handle(q ListFavoritesQuery) ([]domain.PokemonView, error) {
	if q.UserID == "" {
		return nil, domain.ErrUnauthorized
	}

	all, err := h.list.Handle(ListPokemonQuery{UserID: q.UserID})
	if err != nil {
		return nil, err
	}

	favorites := make([]domain.PokemonView, 0)
	for _, v := range all {
		if v.IsFavorite {
			favorites = append(favorites, v)
		}
	}
	return favorites, nil
}
