package domain

// Pokemon represents one catalog entry. IDs are assigned by the PokeAPI
// (1..151 for the Kanto generation) and never change after seeding; the
// likes/dislikes counters are derived from the vote ledger and are only
// mutated through the vote casting transaction.
type Pokemon struct {
	ID       int      `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name" gorm:"not null"`
	ImageURL string   `json:"imageUrl" gorm:"not null"`
	Types    []string `json:"types" gorm:"serializer:json;not null"`
	Likes    int      `json:"likes" gorm:"not null;default:0"`
	Dislikes int      `json:"dislikes" gorm:"not null;default:0"`
}

// TableName specifies the table name
func (Pokemon) TableName() string {
	return "pokemon"
}

// PokemonView is the per-user projection of a Pokemon. It is computed
// at read time and never persisted or cached across responses.
type PokemonView struct {
	Pokemon
	IsFavorite bool `json:"isFavorite"`
	UserVote   int  `json:"userVote"` // 1, -1, or 0
}

// NeutralView returns the projection an anonymous caller sees.
func (p Pokemon) NeutralView() PokemonView {
	return PokemonView{Pokemon: p}
}

// CatalogRepository defines the contract for catalog data access.
// BulkInsert is reserved for the seeder; ApplyVoteDeltas is reserved
// for the vote casting transaction.
type CatalogRepository interface {
	FindByID(id int) (*Pokemon, error)
	// FindByIDForUpdate locks the row for the duration of the enclosing
	// transaction. Callers outside a transaction must use FindByID.
	FindByIDForUpdate(id int) (*Pokemon, error)
	FindAll() ([]Pokemon, error)
	Count() (int64, error)
	BulkInsert(pokemon []Pokemon) error
	ApplyVoteDeltas(id int, likesDelta, dislikesDelta int) error
}
