package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps the in-memory database alive and makes
	// concurrent access deterministic under sqlite's single-writer lock.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, NewGormCatalogRepository(db).AutoMigrate())
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB, pokemon ...domain.Pokemon) {
	t.Helper()
	require.NoError(t, NewGormCatalogRepository(db).BulkInsert(pokemon))
}

func TestCatalogRepositoryFindByID(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db, domain.Pokemon{ID: 25, Name: "Pikachu", ImageURL: "http://img/25.png", Types: []string{"electric"}})
	repo := NewGormCatalogRepository(db)

	p, err := repo.FindByID(25)
	require.NoError(t, err)
	assert.Equal(t, "Pikachu", p.Name)
	assert.Equal(t, []string{"electric"}, p.Types)
	assert.Zero(t, p.Likes)
	assert.Zero(t, p.Dislikes)

	_, err = repo.FindByID(9999)
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
}

func TestCatalogRepositoryBulkInsertIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewGormCatalogRepository(db)

	rows := []domain.Pokemon{
		{ID: 1, Name: "Bulbasaur", ImageURL: "http://img/1.png", Types: []string{"grass", "poison"}},
		{ID: 2, Name: "Ivysaur", ImageURL: "http://img/2.png", Types: []string{"grass", "poison"}},
	}
	require.NoError(t, repo.BulkInsert(rows))

	// A second boot against a populated table must not duplicate or
	// reset anything.
	require.NoError(t, repo.ApplyVoteDeltas(1, 3, 1))
	require.NoError(t, repo.BulkInsert(rows))

	count, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	p, err := repo.FindByID(1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Likes)
	assert.Equal(t, 1, p.Dislikes)
}

func TestCatalogRepositoryFindAllOrder(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db,
		domain.Pokemon{ID: 7, Name: "Squirtle", ImageURL: "u", Types: []string{"water"}},
		domain.Pokemon{ID: 1, Name: "Bulbasaur", ImageURL: "u", Types: []string{"grass"}},
		domain.Pokemon{ID: 4, Name: "Charmander", ImageURL: "u", Types: []string{"fire"}},
	)

	list, err := NewGormCatalogRepository(db).FindAll()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 4, list[1].ID)
	assert.Equal(t, 7, list[2].ID)
}

func TestFavoriteRepositoryToggle(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db, domain.Pokemon{ID: 25, Name: "Pikachu", ImageURL: "u", Types: []string{"electric"}})
	repo := NewGormFavoriteRepository(db)

	on, err := repo.Toggle("user-1", 25)
	require.NoError(t, err)
	assert.True(t, on)

	isFav, err := repo.IsFavorite("user-1", 25)
	require.NoError(t, err)
	assert.True(t, isFav)

	off, err := repo.Toggle("user-1", 25)
	require.NoError(t, err)
	assert.False(t, off)

	isFav, err = repo.IsFavorite("user-1", 25)
	require.NoError(t, err)
	assert.False(t, isFav)

	// Toggles are per-user
	on, err = repo.Toggle("user-2", 25)
	require.NoError(t, err)
	assert.True(t, on)

	isFav, err = repo.IsFavorite("user-1", 25)
	require.NoError(t, err)
	assert.False(t, isFav)
}

func TestFavoriteRepositoryListIDs(t *testing.T) {
	db := testDB(t)
	repo := NewGormFavoriteRepository(db)

	_, err := repo.Toggle("user-1", 1)
	require.NoError(t, err)
	_, err = repo.Toggle("user-1", 4)
	require.NoError(t, err)
	_, err = repo.Toggle("user-2", 7)
	require.NoError(t, err)

	ids, err := repo.ListIDs("user-1")
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, 1)
	assert.Contains(t, ids, 4)
	assert.NotContains(t, ids, 7)
}

func TestVoteRepositoryFindMissingIsNeutral(t *testing.T) {
	db := testDB(t)
	repo := NewGormVoteRepository(db)

	v, err := repo.Find("user-1", 25)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteNeutral, v)
}

func TestVoteRepositoryUpsertReplaces(t *testing.T) {
	db := testDB(t)
	repo := NewGormVoteRepository(db)

	require.NoError(t, repo.Upsert("user-1", 25, domain.VoteLike))
	require.NoError(t, repo.Upsert("user-1", 25, domain.VoteDislike))

	v, err := repo.Find("user-1", 25)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteDislike, v)

	// Still exactly one ledger row
	var count int64
	require.NoError(t, db.Model(&domain.UserVote{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestVoteRepositoryUpsertRejectsNeutral(t *testing.T) {
	db := testDB(t)
	repo := NewGormVoteRepository(db)

	err := repo.Upsert("user-1", 25, domain.VoteNeutral)
	assert.ErrorIs(t, err, domain.ErrInvalidVote)
}

func TestVoteRepositoryClear(t *testing.T) {
	db := testDB(t)
	repo := NewGormVoteRepository(db)

	require.NoError(t, repo.Upsert("user-1", 25, domain.VoteLike))
	require.NoError(t, repo.Clear("user-1", 25))

	v, err := repo.Find("user-1", 25)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteNeutral, v)

	// Clearing an absent row is a no-op
	require.NoError(t, repo.Clear("user-1", 25))
}

func TestTxManagerRollsBackOnError(t *testing.T) {
	db := testDB(t)
	seedCatalog(t, db, domain.Pokemon{ID: 1, Name: "Bulbasaur", ImageURL: "u", Types: []string{"grass"}})
	tm := NewGormTxManager(db)

	err := tm.WithinTx(func(catalog domain.CatalogRepository, votes domain.VoteRepository) error {
		if err := votes.Upsert("user-1", 1, domain.VoteLike); err != nil {
			return err
		}
		if err := catalog.ApplyVoteDeltas(1, 1, 0); err != nil {
			return err
		}
		return assert.AnError
	})
	require.Error(t, err)

	// Neither the ledger row nor the counter bump survived
	v, err := NewGormVoteRepository(db).Find("user-1", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.VoteNeutral, v)

	p, err := NewGormCatalogRepository(db).FindByID(1)
	require.NoError(t, err)
	assert.Zero(t, p.Likes)
}
