package domain

// VoteValue is the direction of a user's vote on a pokemon. Neutral is
// encoded as absence of a ledger row; a stored row always holds Like or
// Dislike.
type VoteValue int

const (
	VoteDislike VoteValue = -1
	VoteNeutral VoteValue = 0
	VoteLike    VoteValue = 1
)

// ParseVoteValue validates a wire-level vote integer. Values outside
// {-1, 0, 1} are rejected, never clamped.
func ParseVoteValue(v int) (VoteValue, error) {
	switch v {
	case -1, 0, 1:
		return VoteValue(v), nil
	default:
		return 0, ErrInvalidVote
	}
}

// CounterDeltas computes the likes/dislikes adjustment for moving a
// user's vote from cur to next: the previous vote is reversed, the new
// one applied. Casting the same vote twice therefore yields (0, 0).
func CounterDeltas(cur, next VoteValue) (likesDelta, dislikesDelta int) {
	if cur == VoteLike {
		likesDelta--
	}
	if cur == VoteDislike {
		dislikesDelta--
	}
	if next == VoteLike {
		likesDelta++
	}
	if next == VoteDislike {
		dislikesDelta++
	}
	return likesDelta, dislikesDelta
}

// UserVote is one vote ledger row: at most one per (user, pokemon).
type UserVote struct {
	UserID    string    `json:"user_id" gorm:"primaryKey"`
	PokemonID int       `json:"pokemon_id" gorm:"primaryKey"`
	Vote      VoteValue `json:"vote" gorm:"not null"`
}

// TableName specifies the table name
func (UserVote) TableName() string {
	return "user_votes"
}

// VoteRepository defines the contract for vote ledger access. Upsert
// and Clear participate in the cast transaction and must run against
// the transactional repository handed out by TxManager.
type VoteRepository interface {
	Find(userID string, pokemonID int) (VoteValue, error)
	FindAllForUser(userID string) (map[int]VoteValue, error)
	Upsert(userID string, pokemonID int, value VoteValue) error
	Clear(userID string, pokemonID int) error
}

// TxManager runs fn inside a single database transaction. The
// repositories passed to fn are bound to that transaction, so every
// mutation inside fn commits or rolls back as one unit.
type TxManager interface {
	WithinTx(fn func(catalog CatalogRepository, votes VoteRepository) error) error
}
