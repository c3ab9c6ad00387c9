package service

import (
	"context"

	"game-portal/internal/bracket"
	"game-portal/internal/utils"
)

// Placeholder name for a slot whose player has not been decided yet.
const tbdLabel = "TBD"

type DisplayMatch struct {
	ID        string        `json:"id"`
	Player1   string        `json:"player1"`
	Player2   string        `json:"player2"`
	Winner    *string       `json:"winner"`
	Score     bracket.Score `json:"score"`
	Completed bool          `json:"completed"`
}

type BracketRound struct {
	Round   int            `json:"round"`
	Matches []DisplayMatch `json:"matches"`
}

type BracketData struct {
	Rounds    []BracketRound  `json:"rounds"`
	Completed bool            `json:"completed"`
	Champion  *bracket.Player `json:"champion"`
}

// GetBracketData projects the tournament for rendering: matches grouped by
// ascending round, open slots shown as TBD.
func (s *TournamentService) GetBracketData(ctx context.Context, tournamentID string) (BracketData, error) {
	var data BracketData
	err := s.store.View(ctx, tournamentID, func(t *bracket.Tournament) error {
		data = buildBracketData(t)
		return nil
	})
	return data, err
}

// Champion returns the tournament winner, nil while play is still possible.
func (s *TournamentService) Champion(ctx context.Context, tournamentID string) (*bracket.Player, error) {
	var champ *bracket.Player
	err := s.store.View(ctx, tournamentID, func(t *bracket.Tournament) error {
		champ = champion(t)
		return nil
	})
	return champ, err
}

func buildBracketData(t *bracket.Tournament) BracketData {
	// Serializes as an empty array, not null, when no matches exist yet.
	rounds := []BracketRound{}
	for _, m := range t.Matches {
		for len(rounds) < m.Round {
			rounds = append(rounds, BracketRound{Round: len(rounds) + 1})
		}
		display := DisplayMatch{
			ID:        m.ID,
			Player1:   tbdLabel,
			Player2:   tbdLabel,
			Score:     m.Score,
			Completed: m.Completed,
		}
		if m.Player1 != nil {
			display.Player1 = m.Player1.Name
		}
		if m.Player2 != nil {
			display.Player2 = m.Player2.Name
		}
		if m.Winner != nil {
			display.Winner = utils.Ptr(m.Winner.Name)
		}
		rounds[m.Round-1].Matches = append(rounds[m.Round-1].Matches, display)
	}

	return BracketData{
		Rounds:    rounds,
		Completed: t.Completed,
		Champion:  champion(t),
	}
}

// The champion is the player with the most wins, ties broken by registration
// order. In a fully played bracket that is the final's winner, since only the
// champion can reach a win per round; with stranded bye slots the final may
// never become playable, and the win count still picks the right player.
func champion(t *bracket.Tournament) *bracket.Player {
	if !t.Completed {
		return nil
	}

	var champ *bracket.Player
	for _, p := range t.Players {
		if champ == nil || p.Wins > champ.Wins {
			champ = p
		}
	}
	return champ
}
