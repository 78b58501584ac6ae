package domain

// Favorite represents a user's favorite pokemon. Presence of the row is
// the whole payload; the composite primary key keeps the relation at
// most one row per (user, pokemon).
type Favorite struct {
	UserID    string `json:"user_id" gorm:"primaryKey"`
	PokemonID int    `json:"pokemon_id" gorm:"primaryKey"`
}

// TableName specifies the table name
func (Favorite) TableName() string {
	return "favorites"
}

// FavoriteRepository defines the contract for favorite membership data
// access. Toggle must be a single atomic conditional operation: two
// concurrent toggles by the same user on the same pokemon can never
// both insert.
type FavoriteRepository interface {
	IsFavorite(userID string, pokemonID int) (bool, error)
	ListIDs(userID string) (map[int]struct{}, error)
	Toggle(userID string, pokemonID int) (bool, error)
}
