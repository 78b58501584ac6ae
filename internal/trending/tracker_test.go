package trending

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantodex/pokedex-backend/kafka"
)

func voteEvent(pokemonID, vote, likes, dislikes int) kafka.VoteCastEvent {
	return kafka.VoteCastEvent{
		PokemonID: pokemonID,
		Vote:      vote,
		Likes:     likes,
		Dislikes:  dislikes,
		Timestamp: time.Now(),
	}
}

func TestTrackerRanksByActivity(t *testing.T) {
	tr := NewTracker()

	tr.Record(voteEvent(25, 1, 1, 0))
	tr.Record(voteEvent(25, -1, 0, 1))
	tr.Record(voteEvent(25, 0, 0, 0))
	tr.Record(voteEvent(1, 1, 1, 0))

	top := tr.Top(10)
	require.Len(t, top, 2)
	assert.Equal(t, 25, top[0].PokemonID)
	assert.Equal(t, 3, top[0].Score, "every event counts, including retractions")
	assert.Equal(t, 1, top[1].PokemonID)
}

func TestTrackerTiesBreakOnID(t *testing.T) {
	tr := NewTracker()
	tr.Record(voteEvent(7, 1, 1, 0))
	tr.Record(voteEvent(4, 1, 1, 0))

	top := tr.Top(10)
	require.Len(t, top, 2)
	assert.Equal(t, 4, top[0].PokemonID)
	assert.Equal(t, 7, top[1].PokemonID)
}

func TestTrackerTopLimits(t *testing.T) {
	tr := NewTracker()
	for id := 1; id <= 5; id++ {
		tr.Record(voteEvent(id, 1, 1, 0))
	}

	assert.Len(t, tr.Top(3), 3)
	assert.Len(t, tr.Top(0), 5, "zero means unlimited")
}

func TestTrackerKeepsLatestCounters(t *testing.T) {
	tr := NewTracker()
	tr.Record(voteEvent(25, 1, 1, 0))
	tr.Record(voteEvent(25, 1, 5, 2))

	top := tr.Top(1)
	require.Len(t, top, 1)
	assert.Equal(t, 5, top[0].Likes)
	assert.Equal(t, 2, top[0].Dislikes)
}

func TestTrackerConcurrentRecords(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tr.Record(voteEvent(n%5+1, 1, 1, 0))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Total())
	assert.Len(t, tr.Top(0), 5)
}
