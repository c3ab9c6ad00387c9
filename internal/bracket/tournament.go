package bracket

import (
	"time"

	"github.com/google/uuid"
)

type TournamentState string

const (
	StateNotStarted TournamentState = "not_started"
	StateInProgress TournamentState = "in_progress"
	StateCompleted  TournamentState = "completed"
)

// Tournament is the aggregate the engine owns. Players keeps registration
// order; seeding happens on a shuffled snapshot at start and never reorders
// this slice. CurrentMatchIndex is -1 whenever State is not in_progress.
type Tournament struct {
	ID                uuid.UUID       `json:"id"`
	Players           []*Player       `json:"players"`
	Matches           []*Match        `json:"matches"`
	CurrentMatchIndex int             `json:"currentMatchIndex"`
	State             TournamentState `json:"state"`
	Completed         bool            `json:"completed"`
	StartDate         *time.Time      `json:"startDate"`

	// Counter behind player_n ids, monotonic even across removals.
	NextPlayerSeq int `json:"-"`
}

func NewTournament() *Tournament {
	return &Tournament{
		ID:                uuid.New(),
		CurrentMatchIndex: -1,
		State:             StateNotStarted,
		NextPlayerSeq:     1,
	}
}

// CurrentMatch returns the match the cursor points at, or nil when the
// tournament is not in progress.
func (t *Tournament) CurrentMatch() *Match {
	if t.CurrentMatchIndex < 0 || t.CurrentMatchIndex >= len(t.Matches) {
		return nil
	}
	return t.Matches[t.CurrentMatchIndex]
}
