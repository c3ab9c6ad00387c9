package bracket

import "time"

// HistoryPlayer is the per-player slice of a saved tournament summary.
type HistoryPlayer struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	UserID *string `json:"userId"`
	Wins   int     `json:"wins"`
	Losses int     `json:"losses"`
}

// HistoryRecord is the persisted tournament summary. The field names and
// RFC 3339 timestamps are part of the stored format, so renames here break
// previously saved history.
type HistoryRecord struct {
	ID         string          `json:"id"`
	Players    []HistoryPlayer `json:"players"`
	Completed  bool            `json:"completed"`
	StartDate  *time.Time      `json:"startDate"`
	EndDate    *time.Time      `json:"endDate"`
	MatchCount int             `json:"matchCount"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Summarize projects the tournament into its history record. EndDate is only
// set once the tournament completed.
func (t *Tournament) Summarize(now time.Time) HistoryRecord {
	players := make([]HistoryPlayer, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, HistoryPlayer{
			ID:     p.ID,
			Name:   p.Name,
			UserID: p.UserID,
			Wins:   p.Wins,
			Losses: p.Losses,
		})
	}

	var endDate *time.Time
	if t.Completed {
		end := now
		endDate = &end
	}

	return HistoryRecord{
		ID:         t.ID.String(),
		Players:    players,
		Completed:  t.Completed,
		StartDate:  t.StartDate,
		EndDate:    endDate,
		MatchCount: len(t.Matches),
		Timestamp:  now,
	}
}
