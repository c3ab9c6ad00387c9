package bracket

type Score struct {
	Player1 int `json:"player1"`
	Player2 int `json:"player2"`
}

type Match struct {
	ID string `json:"id"`

	// Position in the tournament for reconstructing the view. MatchOrder is
	// 1-based within the round; in round 1 it counts bye slots too, so it can
	// start above 1 when the bracket has byes.
	Round      int `json:"round"`
	MatchOrder int `json:"matchOrder"`

	Player1 *Player `json:"player1"`
	Player2 *Player `json:"player2"`
	Winner  *Player `json:"winner"`
	Loser   *Player `json:"loser"`

	// NextMatchID is the serialized link to the match the winner advances
	// into, nil only for the final. NextIndex is the same link resolved to an
	// index into Tournament.Matches at build time.
	NextMatchID *string `json:"nextMatchId"`
	NextIndex   int     `json:"-"`

	Score     Score `json:"score"`
	Completed bool  `json:"completed"`
}

// Playable reports whether the match has both slots filled and no result yet.
func (m *Match) Playable() bool {
	return !m.Completed && m.Player1 != nil && m.Player2 != nil
}
