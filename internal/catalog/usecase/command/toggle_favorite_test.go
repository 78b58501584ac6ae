package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

func TestToggleFavoriteSelfInverse(t *testing.T) {
	f := newVoteFixture(t, pikachu())
	h := NewToggleFavoriteHandler(f.catalog, f.favorites)

	on, err := h.Handle(ToggleFavoriteCommand{UserID: "user-1", PokemonID: 25})
	require.NoError(t, err)
	assert.True(t, on)

	off, err := h.Handle(ToggleFavoriteCommand{UserID: "user-1", PokemonID: 25})
	require.NoError(t, err)
	assert.False(t, off)

	on, err = h.Handle(ToggleFavoriteCommand{UserID: "user-1", PokemonID: 25})
	require.NoError(t, err)
	assert.True(t, on)
}

func TestToggleFavoriteUnknownPokemon(t *testing.T) {
	f := newVoteFixture(t, pikachu())
	h := NewToggleFavoriteHandler(f.catalog, f.favorites)

	_, err := h.Handle(ToggleFavoriteCommand{UserID: "user-1", PokemonID: 9999})
	assert.ErrorIs(t, err, domain.ErrPokemonNotFound)
}

func TestToggleFavoriteRequiresUser(t *testing.T) {
	f := newVoteFixture(t, pikachu())
	h := NewToggleFavoriteHandler(f.catalog, f.favorites)

	_, err := h.Handle(ToggleFavoriteCommand{UserID: "", PokemonID: 25})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestToggleFavoriteDoesNotTouchCounters(t *testing.T) {
	f := newVoteFixture(t, pikachu())
	h := NewToggleFavoriteHandler(f.catalog, f.favorites)

	_, err := f.handler.Handle(CastVoteCommand{UserID: "user-1", PokemonID: 25, Vote: 1})
	require.NoError(t, err)

	_, err = h.Handle(ToggleFavoriteCommand{UserID: "user-1", PokemonID: 25})
	require.NoError(t, err)

	p, err := f.catalog.FindByID(25)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Likes)
	assert.Equal(t, 0, p.Dislikes)
}
