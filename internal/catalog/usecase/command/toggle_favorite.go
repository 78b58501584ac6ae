package command

import (
	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// ToggleFavoriteCommand represents the command to flip a favorite
type ToggleFavoriteCommand struct {
	UserID    string
	PokemonID int
}

// ToggleFavoriteHandler handles the favorite toggle command. The flip
// itself is delegated to the repository's atomic conditional toggle;
// favorites never touch the aggregate counters.
type ToggleFavoriteHandler struct {
	catalog   domain.CatalogRepository
	favorites domain.FavoriteRepository
}

// NewToggleFavoriteHandler creates a new toggle favorite handler
func NewToggleFavoriteHandler(catalog domain.CatalogRepository, favorites domain.FavoriteRepository) *ToggleFavoriteHandler {
	return &ToggleFavoriteHandler{catalog: catalog, favorites: favorites}
}

// Handle executes the toggle and returns the new membership state.
func (h *ToggleFavoriteHandler) Handle(cmd ToggleFavoriteCommand) (bool, error) {
	if cmd.UserID == "" {
		return false, domain.ErrUnauthorized
	}
	if _, err := h.catalog.FindByID(cmd.PokemonID); err != nil {
		return false, err
	}
	return h.favorites.Toggle(cmd.UserID, cmd.PokemonID)
}
