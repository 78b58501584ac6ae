//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/kantodex/pokedex-backend/internal/catalog/delivery/http"
	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/internal/catalog/repository"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/command"
	"github.com/kantodex/pokedex-backend/internal/catalog/usecase/query"
	"github.com/kantodex/pokedex-backend/kafka"
)

// ProvideCatalogRepository provides the catalog repository
func ProvideCatalogRepository(db *gorm.DB) domain.CatalogRepository {
	return repository.NewGormCatalogRepository(db)
}

// ProvideFavoriteRepository provides the favorite repository
func ProvideFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return repository.NewGormFavoriteRepository(db)
}

// ProvideVoteRepository provides the vote ledger repository
func ProvideVoteRepository(db *gorm.DB) domain.VoteRepository {
	return repository.NewGormVoteRepository(db)
}

// ProvideTxManager provides the transaction manager
func ProvideTxManager(db *gorm.DB) domain.TxManager {
	return repository.NewGormTxManager(db)
}

// Command handler providers
func ProvideToggleFavoriteHandler(catalog domain.CatalogRepository, favorites domain.FavoriteRepository) *command.ToggleFavoriteHandler {
	return command.NewToggleFavoriteHandler(catalog, favorites)
}

func ProvideCastVoteHandler(
	tx domain.TxManager,
	catalog domain.CatalogRepository,
	favorites domain.FavoriteRepository,
	votes domain.VoteRepository,
) *command.CastVoteHandler {
	return command.NewCastVoteHandler(tx, catalog, favorites, votes)
}

// Query handler providers
func ProvideGetPokemonHandler(catalog domain.CatalogRepository, favorites domain.FavoriteRepository, votes domain.VoteRepository) *query.GetPokemonHandler {
	return query.NewGetPokemonHandler(catalog, favorites, votes)
}

func ProvideListPokemonHandler(catalog domain.CatalogRepository, favorites domain.FavoriteRepository, votes domain.VoteRepository) *query.ListPokemonHandler {
	return query.NewListPokemonHandler(catalog, favorites, votes)
}

func ProvideListFavoritesHandler(list *query.ListPokemonHandler) *query.ListFavoritesHandler {
	return query.NewListFavoritesHandler(list)
}

func ProvideGetStatsHandler(catalog domain.CatalogRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(catalog)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideCatalogRepository,
	ProvideFavoriteRepository,
	ProvideVoteRepository,
	ProvideTxManager,
)

var CommandHandlerSet = wire.NewSet(
	ProvideToggleFavoriteHandler,
	ProvideCastVoteHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetPokemonHandler,
	ProvideListPokemonHandler,
	ProvideListFavoritesHandler,
	ProvideGetStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	RepositorySet,
	CommandHandlerSet,
	QueryHandlerSet,
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher *kafka.Publisher) (*http.CatalogHandler, error) {
	wire.Build(
		AllHandlersSet,
		http.NewCatalogHandler,
	)
	return nil, nil
}
