package command

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
	"github.com/kantodex/pokedex-backend/internal/catalog/repository"
)

type voteFixture struct {
	handler   *CastVoteHandler
	catalog   *repository.GormCatalogRepository
	favorites *repository.GormFavoriteRepository
	votes     *repository.GormVoteRepository
}

func newVoteFixture(t *testing.T, pokemon ...domain.Pokemon) *voteFixture {
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

	favorites := repository.NewGormFavoriteRepository(db)
	votes := repository.NewGormVoteRepository(db)
	tm := repository.NewGormTxManager(db)

	return &voteFixture{
		handler:   NewCastVoteHandler(tm, catalog, favorites, votes),
		catalog:   catalog,
		favorites: favorites,
		votes:     votes,
	}
}

func pikachu() domain.Pokemon {
	return domain.Pokemon{ID: 25, Name: "Pikachu", ImageURL: "http://img/25.png", Types: []string{"electric"}}
}

func TestCastVoteLike(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	view, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, view.Likes)
	assert.Equal(t, 0, view.Dislikes)
	assert.Equal(t, 1, view.UserVote)
	assert.False(t, view.IsFavorite)
}

func TestCastVoteIdempotent(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	for i := 0; i < 3; i++ {
		view, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 1})
		require.NoError(t, err)
		assert.Equal(t, 1, view.Likes, "repeated identical vote must not inflate the counter")
	}
}

func TestCastVoteSwitchDirection(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	_, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 1})
	require.NoError(t, err)

	view, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: -1})
	require.NoError(t, err)

	assert.Equal(t, 0, view.Likes)
	assert.Equal(t, 1, view.Dislikes)
	assert.Equal(t, -1, view.UserVote)
}

func TestCastVoteRetract(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	_, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: -1})
	require.NoError(t, err)

	view, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 0})
	require.NoError(t, err)

	assert.Equal(t, 0, view.Likes)
	assert.Equal(t, 0, view.Dislikes)
	assert.Equal(t, 0, view.UserVote)

	// Retracting again stays at zero
	view, err = f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, view.Likes)
	assert.Equal(t, 0, view.Dislikes)
}

// Two users like, one of them switches to dislike, the other retracts:
// counters always equal the number of ledger rows per direction.
func TestCastVoteMultipleUsers(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	_, err := f.handler.Handle(CastVoteCommand{UserID: "alice", PokemonID: 25, Vote: 1})
	require.NoError(t, err)
	view, err := f.handler.Handle(CastVoteCommand{UserID: "bob", PokemonID: 25, Vote: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, view.Likes)

	view, err = f.handler.Handle(CastVoteCommand{UserID: "alice", PokemonID: 25, Vote: -1})
	require.NoError(t, err)
	assert.Equal(t, 1, view.Likes)
	assert.Equal(t, 1, view.Dislikes)

	view, err = f.handler.Handle(CastVoteCommand{UserID: "bob", PokemonID: 25, Vote: 0})
	require.NoError(t, err)
	assert.Equal(t, 0, view.Likes)
	assert.Equal(t, 1, view.Dislikes)
	assert.Equal(t, 0, view.UserVote)
}

func TestCastVoteValidation(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	_, err := f.handler.Handle(CastVoteCommand{UserID: "", PokemonID: 25, Vote: 1})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 2})
	assert.ErrorIs(t, err, domain.ErrInvalidVote)

	_, err = f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 9999, Vote: 1})
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)

	// Nothing leaked into the counters
	p, err := f.catalog.FindByID(25)
	require.NoError(t, err)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Dislikes)
}

// Concurrent casts from the same user end with at most one ledger row
// and counters matching that row.
func TestCastVoteConcurrentSameUser(t *testing.T) {
	f := newVoteFixture(t, pikachu())

	const workers = 8
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		vote := 1
		if i%2 == 0 {
			vote = -1
		}
		go func(v int) {
			defer wg.Done()
			// Conflicts exhaust retries under heavy contention; that is
			// an acceptable outcome as long as state stays consistent.
			_, _ = f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: v})
		}(vote)
	}
	wg.Wait()

	votes, err := f.votes.FindAllForUser("user-1")
	require.NoError(t, err)
	assert.LessOrEqual(t, len(votes), 1)

	p, err := f.catalog.FindByID(25)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, p.Likes, 0)
	assert.GreaterOrEqual(t, p.Dislikes, 0)
	assert.LessOrEqual(t, p.Likes+p.Dislikes, 1)

	switch votes[25] {
	case domain.VoteLike:
		assert.Equal(t, 1, p.Likes)
		assert.Equal(t, 0, p.Dislikes)
	case domain.VoteDislike:
		assert.Equal(t, 0, p.Likes)
		assert.Equal(t, 1, p.Dislikes)
	default:
		assert.Equal(t, 0, p.Likes)
		assert.Equal(t, 0, p.Dislikes)
	}
}
