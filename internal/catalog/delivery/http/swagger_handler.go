package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers Swagger documentation routes
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// ListPokemon godoc
// @Summary List the pokemon catalog
// @Description Full 151-entry catalog in ascending id order, with per-user favorite/vote state when authenticated
// @Tags Pokemon
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /api/pokemon [get]
func (h *CatalogHandler) ListPokemonDoc() {}

// GetPokemon godoc
// @Summary Get one pokemon
// @Tags Pokemon
// @Produce json
// @Param id path int true "Pokemon ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/pokemon/{id} [get]
func (h *CatalogHandler) GetPokemonDoc() {}

// ListFavorites godoc
// @Summary List the caller's favorite pokemon
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/favorites [get]
func (h *CatalogHandler) ListFavoritesDoc() {}

// ToggleFavorite godoc
// @Summary Toggle a favorite
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{pokemonId=int} true "Pokemon to toggle"
// @Success 200 {object} object{success=bool,data=object{isFavorite=bool}}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/favorites [post]
func (h *CatalogHandler) ToggleFavoriteDoc() {}

// CastVote godoc
// @Summary Cast, switch or retract a vote
// @Description vote 1 likes, -1 dislikes, 0 retracts; the response carries the updated counters
// @Tags Votes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{pokemonId=int,vote=int} true "Vote to cast"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /api/votes [post]
func (h *CatalogHandler) CastVoteDoc() {}
