package bracket

import "errors"

// Errors raised by the engine. Every operation validates before it writes, so
// a returned error means the tournament was left untouched.
var (
	// Roster validation
	ErrEmptyName      = errors.New("player name is empty")
	ErrDuplicateName  = errors.New("player name is already taken")
	ErrPlayerNotFound = errors.New("player not found")
	ErrRosterLocked   = errors.New("tournament has already started, roster is locked")

	// Start preconditions
	ErrNotEnoughPlayers = errors.New("at least 2 players are required")
	ErrAlreadyStarted   = errors.New("tournament has already started")

	// Progression
	ErrNoActiveMatch = errors.New("no active match to record a result for")
	ErrInvalidScore  = errors.New("tied scores cannot decide a match")
	ErrMatchNotFound = errors.New("linked match not found")

	// Registry
	ErrTournamentNotFound = errors.New("tournament not found")
)
