package kafka

import "time"

// VoteCastEvent is published after a vote-cast transaction commits. It
// carries the committed ledger value and the resulting counters, never
// an in-flight state.
type VoteCastEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	UserID    string    `json:"user_id"`
	PokemonID int       `json:"pokemon_id"`
	Vote      int       `json:"vote"` // committed value: 1, -1, or 0 (retracted)
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	Timestamp time.Time `json:"timestamp"`
}

// FavoriteToggledEvent is published after a favorite toggle commits
type FavoriteToggledEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	PokemonID  int       `json:"pokemon_id"`
	IsFavorite bool      `json:"is_favorite"`
	Timestamp  time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeVoteCast        = "vote.cast"
	EventTypeFavoriteToggled = "favorite.toggled"
)

// Kafka topics
const (
	TopicVoteCast        = "pokemon-vote-cast"
	TopicFavoriteToggled = "pokemon-favorite-toggled"
)
