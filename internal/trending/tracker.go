package trending

import (
	"sort"
	"sync"
	"time"

	"github.com/kantodex/pokedex-backend/kafka"
)

// Entry is one pokemon's recent vote activity
type Entry struct {
	PokemonID int       `json:"pokemonId"`
	Score     int       `json:"score"`
	Likes     int       `json:"likes"`
	Dislikes  int       `json:"dislikes"`
	LastVote  time.Time `json:"lastVote"`
}

// Tracker accumulates vote events into per-pokemon activity scores.
// Every observed event counts one point of activity regardless of
// direction; likes/dislikes snapshots come from the event payload.
type Tracker struct {
	mu      sync.RWMutex
	entries map[int]*Entry
}

// NewTracker creates an empty tracker
func NewTracker() *Tracker {
	return &Tracker{entries: make(map[int]*Entry)}
}

// Record ingests one vote event
func (t *Tracker) Record(event kafka.VoteCastEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[event.PokemonID]
	if !ok {
		e = &Entry{PokemonID: event.PokemonID}
		t.entries[event.PokemonID] = e
	}
	e.Score++
	e.Likes = event.Likes
	e.Dislikes = event.Dislikes
	e.LastVote = event.Timestamp
}

// Top returns the n most active pokemon, highest score first. Ties
// break on pokemon id so the order is stable.
func (t *Tracker) Top(n int) []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()

	all := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		all = append(all, *e)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Score != all[j].Score {
			return all[i].Score > all[j].Score
		}
		return all[i].PokemonID < all[j].PokemonID
	})
	if n > 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Total returns the number of events observed
func (t *Tracker) Total() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	total := 0
	for _, e := range t.entries {
		total += e.Score
	}
	return total
}
