package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/internal/catalog/repository"
)

type queryFixture struct {
	catalog   *repository.GormCatalogRepository
	favorites *repository.GormFavoriteRepository
	votes     *repository.GormVoteRepository
}

func newQueryFixture(t *testing.T, pokemon ...domain.Pokemon) *queryFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	catalog := repository.NewGormCatalogRepository(db)
	require.NoError(t, catalog.AutoMigrate())
	require.NoError(t, catalog.BulkInsert(pokemon))

	return &queryFixture{
		catalog:   catalog,
		favorites: repository.NewGormFavoriteRepository(db),
		votes:     repository.NewGormVoteRepository(db),
	}
}

func kantoStarters() []domain.Pokemon {
	return []domain.Pokemon{
		{ID: 1, Name: "Bulbasaur", ImageURL: "http://img/1.png", Types: []string{"grass", "poison"}},
		{ID: 4, Name: "Charmander", ImageURL: "http://img/4.png", Types: []string{"fire"}},
		{ID: 7, Name: "Squirtle", ImageURL: "http://img/7.png", Types: []string{"water"}},
	}
}

func TestListPokemonAnonymousIsNeutral(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	// Another user's state must not leak into anonymous views
	_, err := f.favorites.Toggle("alice", 1)
	require.NoError(t, err)
	require.NoError(t, f.votes.Upsert("alice", 4, domain.VoteLike))
	require.NoError(t, f.catalog.ApplyVoteDeltas(4, 1, 0))

	h := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	views, err := h.Handle(ListPokemonQuery{UserID: ""})
	require.NoError(t, err)
	require.Len(t, views, 3)

	for _, v := range views {
		assert.False(t, v.IsFavorite)
		assert.Zero(t, v.UserVote)
	}
	// Shared counters still show
	assert.Equal(t, 1, views[1].Likes)
}

func TestListPokemonMergesUserState(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	_, err := f.favorites.Toggle("alice", 7)
	require.NoError(t, err)
	require.NoError(t, f.votes.Upsert("alice", 1, domain.VoteDislike))

	h := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	views, err := h.Handle(ListPokemonQuery{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, -1, views[0].UserVote)
	assert.False(t, views[0].IsFavorite)
	assert.True(t, views[2].IsFavorite)
	assert.Zero(t, views[2].UserVote)
}

func TestListPokemonAscendingOrder(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	h := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	views, err := h.Handle(ListPokemonQuery{})
	require.NoError(t, err)

	for i := 1; i < len(views); i++ {
		assert.Less(t, views[i-1].ID, views[i].ID)
	}
}

func TestGetPokemonView(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)
	require.NoError(t, f.votes.Upsert("alice", 4, domain.VoteLike))

	h := NewGetPokemonHandler(f.catalog, f.favorites, f.votes)

	anon, err := h.Handle(GetPokemonQuery{ID: 4})
	require.NoError(t, err)
	assert.Zero(t, anon.UserVote)

	mine, err := h.Handle(GetPokemonQuery{ID: 4, UserID: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.UserVote)

	_, err = h.Handle(GetPokemonQuery{ID: 9999})
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
}

func TestListFavoritesFiltersAndKeepsOrder(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	// Favorite out of catalog order
	_, err := f.favorites.Toggle("alice", 7)
	require.NoError(t, err)
	_, err = f.favorites.Toggle("alice", 1)
	require.NoError(t, err)

	list := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	h := NewListFavoritesHandler(list)

	views, err := h.Handle(ListFavoritesQuery{UserID: "alice"})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 1, views[0].ID)
	assert.Equal(t, 7, views[1].ID)
	assert.True(t, views[0].IsFavorite)
}

func TestListFavoritesEmptyForNewUser(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	list := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	h := NewListFavoritesHandler(list)

	views, err := h.Handle(ListFavoritesQuery{UserID: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestListFavoritesRequiresUser(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)

	list := NewListPokemonHandler(f.catalog, f.favorites, f.votes)
	h := NewListFavoritesHandler(list)

	_, err := h.Handle(ListFavoritesQuery{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetStatsAggregates(t *testing.T) {
	f := newQueryFixture(t, kantoStarters()...)
	require.NoError(t, f.catalog.ApplyVoteDeltas(1, 2, 0))
	require.NoError(t, f.catalog.ApplyVoteDeltas(4, 0, 1))

	h := NewGetStatsHandler(f.catalog)
	stats, err := h.Handle(GetStatsQuery{})
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalPokemon)
	assert.Equal(t, 2, stats.TotalLikes)
	assert.Equal(t, 1, stats.TotalDislikes)
}
