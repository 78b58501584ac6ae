package domain

import "errors"

var (
	// ErrPokemonNotFound is returned when a referenced pokemon id does
	// not exist in the catalog.
	ErrPokemonNotFound = errors.New("pokemon not found")

	// ErrUnauthorized is returned when a mutating operation is invoked
	// without a user identity.
	ErrUnauthorized = errors.New("user identity required")

	// ErrInvalidVote is returned for vote values outside {-1, 0, 1}.
	ErrInvalidVote = errors.New("vote must be -1, 0 or 1")

	// ErrVoteConflict marks a concurrent-write conflict inside the cast
	// transaction. The engine retries these with a re-read ledger value
	// before giving up.
	ErrVoteConflict = errors.New("concurrent vote conflict")
)
