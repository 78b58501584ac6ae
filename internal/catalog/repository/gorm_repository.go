package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// AutoMigrate creates the catalog, favorites and vote ledger tables.
// The composite primary keys on favorites and user_votes enforce the
// at-most-one-row-per-(user,pokemon) invariant at the storage layer.
func (r *GormCatalogRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Pokemon{}, &domain.Favorite{}, &domain.UserVote{})
}

// FindByID retrieves a pokemon by ID
func (r *GormCatalogRepository) FindByID(id int) (*domain.Pokemon, error) {
	var p domain.Pokemon
	if err := r.db.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, fmt.Errorf("failed to find pokemon: %w", err)
	}
	return &p, nil
}

// FindByIDForUpdate retrieves a pokemon by ID and locks its row for the
// enclosing transaction. Vote casts lock the pokemon row first, so all
// casts touching the same pokemon serialize on it.
func (r *GormCatalogRepository) FindByIDForUpdate(id int) (*domain.Pokemon, error) {
	var p domain.Pokemon
	q := r.db
	// sqlite rejects FOR UPDATE; its single-writer lock already
	// serializes the transaction.
	if r.db.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPokemonNotFound
		}
		return nil, fmt.Errorf("failed to lock pokemon: %w", err)
	}
	return &p, nil
}

// FindAll retrieves the full catalog in ascending id order
func (r *GormCatalogRepository) FindAll() ([]domain.Pokemon, error) {
	var list []domain.Pokemon
	if err := r.db.Order("id ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list pokemon: %w", err)
	}
	return list, nil
}

// Count returns the number of catalog rows
func (r *GormCatalogRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Pokemon{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pokemon: %w", err)
	}
	return count, nil
}

// BulkInsert inserts the seed rows. The seeder checks Count first; the
// conflict clause makes a racing second boot a no-op instead of an
// error, so bulk load can never duplicate rows.
func (r *GormCatalogRepository) BulkInsert(pokemon []domain.Pokemon) error {
	if len(pokemon) == 0 {
		return nil
	}
	err := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&pokemon).Error
	if err != nil {
		return fmt.Errorf("failed to bulk insert pokemon: %w", err)
	}
	return nil
}

// ApplyVoteDeltas atomically increments the aggregate counters.
func (r *GormCatalogRepository) ApplyVoteDeltas(id int, likesDelta, dislikesDelta int) error {
	err := r.db.Model(&domain.Pokemon{}).Where("id = ?", id).Updates(map[string]interface{}{
		"likes":    gorm.Expr("likes + ?", likesDelta),
		"dislikes": gorm.Expr("dislikes + ?", dislikesDelta),
	}).Error
	if err != nil {
		return fmt.Errorf("failed to apply vote deltas: %w", err)
	}
	return nil
}

// GormFavoriteRepository implements FavoriteRepository using GORM
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GORM favorite repository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// IsFavorite reports membership of (userID, pokemonID)
func (r *GormFavoriteRepository) IsFavorite(userID string, pokemonID int) (bool, error) {
	var count int64
	err := r.db.Model(&domain.Favorite{}).
		Where("user_id = ? AND pokemon_id = ?", userID, pokemonID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// ListIDs returns the set of pokemon ids the user has favorited
func (r *GormFavoriteRepository) ListIDs(userID string) (map[int]struct{}, error) {
	var favorites []domain.Favorite
	if err := r.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	ids := make(map[int]struct{}, len(favorites))
	for _, f := range favorites {
		ids[f.PokemonID] = struct{}{}
	}
	return ids, nil
}

// Toggle flips membership and returns the new state. The conditional
// insert is a single statement: when two toggles race, exactly one
// insert wins and the loser takes the delete path, so the composite
// primary key can never be violated by a double insert.
func (r *GormFavoriteRepository) Toggle(userID string, pokemonID int) (bool, error) {
	fav := domain.Favorite{UserID: userID, PokemonID: pokemonID}
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav)
	if res.Error != nil {
		return false, fmt.Errorf("failed to insert favorite: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		return true, nil
	}
	// Row already existed: this toggle removes it.
	err := r.db.Where("user_id = ? AND pokemon_id = ?", userID, pokemonID).
		Delete(&domain.Favorite{}).Error
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return false, nil
}

// GormVoteRepository implements VoteRepository using GORM
type GormVoteRepository struct {
	db *gorm.DB
}

// NewGormVoteRepository creates a new GORM vote repository
func NewGormVoteRepository(db *gorm.DB) *GormVoteRepository {
	return &GormVoteRepository{db: db}
}

// Find returns the user's current vote; a missing row reads as neutral.
func (r *GormVoteRepository) Find(userID string, pokemonID int) (domain.VoteValue, error) {
	var v domain.UserVote
	err := r.db.Where("user_id = ? AND pokemon_id = ?", userID, pokemonID).First(&v).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.VoteNeutral, nil
		}
		return domain.VoteNeutral, fmt.Errorf("failed to find vote: %w", err)
	}
	return v.Vote, nil
}

// FindAllForUser returns all of the user's votes keyed by pokemon id
func (r *GormVoteRepository) FindAllForUser(userID string) (map[int]domain.VoteValue, error) {
	var votes []domain.UserVote
	if err := r.db.Where("user_id = ?", userID).Find(&votes).Error; err != nil {
		return nil, fmt.Errorf("failed to list votes: %w", err)
	}
	byID := make(map[int]domain.VoteValue, len(votes))
	for _, v := range votes {
		byID[v.PokemonID] = v.Vote
	}
	return byID, nil
}

// Upsert stores a Like or Dislike, replacing any prior value. Neutral
// is never stored; callers use Clear for that.
func (r *GormVoteRepository) Upsert(userID string, pokemonID int, value domain.VoteValue) error {
	if value == domain.VoteNeutral {
		return domain.ErrInvalidVote
	}
	vote := domain.UserVote{UserID: userID, PokemonID: pokemonID, Vote: value}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pokemon_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vote"}),
	}).Create(&vote).Error
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}
	return nil
}

// Clear deletes the ledger row if present; clearing an absent row is a
// no-op.
func (r *GormVoteRepository) Clear(userID string, pokemonID int) error {
	err := r.db.Where("user_id = ? AND pokemon_id = ?", userID, pokemonID).
		Delete(&domain.UserVote{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear vote: %w", err)
	}
	return nil
}

// GormTxManager implements TxManager on a gorm connection
type GormTxManager struct {
	db *gorm.DB
}

// NewGormTxManager creates a new transaction manager
func NewGormTxManager(db *gorm.DB) *GormTxManager {
	return &GormTxManager{db: db}
}

// WithinTx runs fn inside one database transaction. Driver-level
// conflicts (serialization failures, deadlocks, sqlite busy) surface as
// ErrVoteConflict so the engine can retry with a fresh ledger read.
func (m *GormTxManager) WithinTx(fn func(catalog domain.CatalogRepository, votes domain.VoteRepository) error) error {
	err := m.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewGormCatalogRepository(tx), NewGormVoteRepository(tx))
	})
	if err != nil && isRetryable(err) {
		return fmt.Errorf("%w: %v", domain.ErrVoteConflict, err)
	}
	return err
}

// isRetryable reports whether the error is a transient write conflict.
func isRetryable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// serialization_failure, deadlock_detected
		return pqErr.Code == "40001" || pqErr.Code == "40P01"
	}
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked")
}
