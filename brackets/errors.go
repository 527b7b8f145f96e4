package brackets

import "errors"

var (
	// Data-integrity errors: the snapshot handed to the engine is inconsistent.
	ErrUnknownPlayer   = errors.New("record references a player that is not on the roster")
	ErrDuplicatePlayer = errors.New("player appears more than once")
	ErrSelfMatch       = errors.New("match winner and loser are the same player")

	ErrUnknownRankingKey = errors.New("unknown ranking key")

	// Pairing errors.
	ErrUnsatisfiableBye = errors.New("odd field but every player has already received a bye")
	ErrMalformedRound   = errors.New("malformed round")
)
