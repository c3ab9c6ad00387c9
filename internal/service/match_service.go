package service

import (
	"context"

	"game-portal/internal/bracket"
	"game-portal/internal/store"
)

type MatchService struct {
	store *store.TournamentStore
}

func NewMatchService(store *store.TournamentStore) *MatchService {
	return &MatchService{store: store}
}

// RecordResult records the score for the current match, advances the winner
// into the linked match and moves the cursor to the next playable match. It
// returns that match, or nil when nothing is left to play and the tournament
// completed. Ties are rejected; the caller must supply a decisive score.
func (s *MatchService) RecordResult(ctx context.Context, tournamentID string, score1, score2 int) (*bracket.Match, error) {
	var next *bracket.Match

	err := s.store.Update(ctx, tournamentID, func(t *bracket.Tournament) error {
		if len(t.Matches) == 0 || t.CurrentMatchIndex < 0 {
			return bracket.ErrNoActiveMatch
		}
		match := t.CurrentMatch()
		if match == nil || !match.Playable() {
			return bracket.ErrNoActiveMatch
		}
		if score1 == score2 {
			return bracket.ErrInvalidScore
		}
		if match.NextIndex >= len(t.Matches) {
			return bracket.ErrMatchNotFound
		}

		winner, loser := match.Player1, match.Player2
		if score2 > score1 {
			winner, loser = loser, winner
		}

		match.Score = bracket.Score{Player1: score1, Player2: score2}
		match.Winner = winner
		match.Loser = loser
		match.Completed = true
		winner.Wins++
		loser.Losses++

		// The winner takes the first open slot of the linked match. With byes
		// in play both feeders can point at the same match, so this is slot
		// order of arrival rather than bracket position.
		if match.NextIndex >= 0 {
			linked := t.Matches[match.NextIndex]
			if linked.Player1 == nil {
				linked.Player1 = winner
			} else {
				linked.Player2 = winner
			}
		}

		for i := t.CurrentMatchIndex + 1; i < len(t.Matches); i++ {
			if t.Matches[i].Playable() {
				t.CurrentMatchIndex = i
				next = t.Matches[i]
				return nil
			}
		}

		t.CurrentMatchIndex = -1
		t.Completed = true
		t.State = bracket.StateCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}
