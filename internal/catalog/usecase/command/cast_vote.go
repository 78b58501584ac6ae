package command

import (
	"errors"
	"fmt"

	"github.com/kantodex/pokedex-backend/internal/catalog/domain"
)

// castVoteMaxAttempts bounds internal retries of the cast transaction
// when a concurrent write conflict is detected.
const castVoteMaxAttempts = 3

// CastVoteCommand represents the command to cast, switch or retract a
// vote. Vote 0 retracts any existing vote.
type CastVoteCommand struct {
	UserID    string
	PokemonID int
	Vote      int
}

// CastVoteHandler keeps the aggregate counters consistent with the
// vote ledger. All mutation happens inside one transaction: the
// pokemon row is locked first (which doubles as the existence check and
// serializes concurrent casts on the same pokemon), the current ledger
// value is read under that lock, the counter deltas are derived from it
// and both the ledger row and the counters are written before commit.
type CastVoteHandler struct {
	tx        domain.TxManager
	favorites domain.FavoriteRepository
	votes     domain.VoteRepository
	catalog   domain.CatalogRepository
}

// NewCastVoteHandler creates a new cast vote handler
func NewCastVoteHandler(
	tx domain.TxManager,
	catalog domain.CatalogRepository,
	favorites domain.FavoriteRepository,
	votes domain.VoteRepository,
) *CastVoteHandler {
	return &CastVoteHandler{tx: tx, catalog: catalog, favorites: favorites, votes: votes}
}

// Handle executes the cast vote command and returns the recomputed
// post-commit view for the voting user.
func (h *CastVoteHandler) Handle(cmd CastVoteCommand) (*domain.PokemonView, error) {
	if cmd.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	next, err := domain.ParseVoteValue(cmd.Vote)
	if err != nil {
		return nil, fmt.Errorf("%w: got %d", err, cmd.Vote)
	}

	var lastErr error
	for attempt := 0; attempt < castVoteMaxAttempts; attempt++ {
		lastErr = h.tx.WithinTx(func(catalog domain.CatalogRepository, votes domain.VoteRepository) error {
			if _, err := catalog.FindByIDForUpdate(cmd.PokemonID); err != nil {
				return err
			}

			cur, err := votes.Find(cmd.UserID, cmd.PokemonID)
			if err != nil {
				return err
			}

			if next == domain.VoteNeutral {
				if err := votes.Clear(cmd.UserID, cmd.PokemonID); err != nil {
					return err
				}
			} else {
				if err := votes.Upsert(cmd.UserID, cmd.PokemonID, next); err != nil {
					return err
				}
			}

			likesDelta, dislikesDelta := domain.CounterDeltas(cur, next)
			if likesDelta == 0 && dislikesDelta == 0 {
				return nil
			}
			return catalog.ApplyVoteDeltas(cmd.PokemonID, likesDelta, dislikesDelta)
		})
		if lastErr == nil {
			break
		}
		// Conflicts re-run the whole transaction so cur is re-derived
		// from the committed ledger state, never a stale read.
		if !errors.Is(lastErr, domain.ErrVoteConflict) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	return h.viewAfterCommit(cmd.UserID, cmd.PokemonID)
}

// viewAfterCommit rebuilds the caller's view from committed state.
func (h *CastVoteHandler) viewAfterCommit(userID string, pokemonID int) (*domain.PokemonView, error) {
	p, err := h.catalog.FindByID(pokemonID)
	if err != nil {
		return nil, err
	}
	isFav, err := h.favorites.IsFavorite(userID, pokemonID)
	if err != nil {
		return nil, err
	}
	vote, err := h.votes.Find(userID, pokemonID)
	if err != nil {
		return nil, err
	}
	view := p.NeutralView()
	view.IsFavorite = isFav
	view.UserVote = int(vote)
	return &view, nil
}
