package services

import "errors"

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrPlayerNotFound = errors.New("player not found")

	// Validation
	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrSamePlayer         = errors.New("a player cannot play against themselves")
	ErrInvalidPlayerID    = errors.New("player id must be positive")
	ErrInvalidRound       = errors.New("round must be a positive integer")
	ErrInvalidRankingKey  = errors.New("invalid ranking key")

	// Recorded data cannot be ranked or paired as stored.
	ErrDataIntegrity = errors.New("tournament data is inconsistent")

	// Conflicts
	ErrRoundAlreadyStarted = errors.New("a bye has already been recorded for this round")
	ErrByeAlreadyAwarded   = errors.New("player has already received a bye")
	ErrNoByeCandidate      = errors.New("odd number of players and every player has already had a bye")

	// Authentication
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrAuthNotConfigured    = errors.New("organizer login is not configured")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
)
