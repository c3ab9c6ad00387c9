package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"game-portal/internal/bracket"
	"github.com/jmoiron/sqlx"
)

// At most this many tournament summaries are retained; saving past the cap
// evicts the oldest rows.
const historyLimit = 20

type HistoryStore struct {
	db *sqlx.DB
}

func NewHistoryStore(db *sqlx.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

type historyRow struct {
	ID           int64   `db:"id"`
	TournamentID string  `db:"tournament_id"`
	Players      string  `db:"players"`
	Completed    bool    `db:"completed"`
	StartDate    *string `db:"start_date"`
	EndDate      *string `db:"end_date"`
	MatchCount   int     `db:"match_count"`
	SavedAt      string  `db:"saved_at"`
}

func toRow(record bracket.HistoryRecord) (historyRow, error) {
	players, err := json.Marshal(record.Players)
	if err != nil {
		return historyRow{}, fmt.Errorf("failed to encode players: %w", err)
	}

	formatDate := func(ts *time.Time) *string {
		if ts == nil {
			return nil
		}
		s := ts.UTC().Format(time.RFC3339)
		return &s
	}

	return historyRow{
		TournamentID: record.ID,
		Players:      string(players),
		Completed:    record.Completed,
		StartDate:    formatDate(record.StartDate),
		EndDate:      formatDate(record.EndDate),
		MatchCount:   record.MatchCount,
		SavedAt:      record.Timestamp.UTC().Format(time.RFC3339),
	}, nil
}

func (r historyRow) toRecord() (bracket.HistoryRecord, error) {
	var players []bracket.HistoryPlayer
	if err := json.Unmarshal([]byte(r.Players), &players); err != nil {
		return bracket.HistoryRecord{}, fmt.Errorf("failed to decode players: %w", err)
	}

	parseDate := func(s *string) (*time.Time, error) {
		if s == nil {
			return nil, nil
		}
		ts, err := time.Parse(time.RFC3339, *s)
		if err != nil {
			return nil, err
		}
		return &ts, nil
	}

	startDate, err := parseDate(r.StartDate)
	if err != nil {
		return bracket.HistoryRecord{}, fmt.Errorf("bad start_date: %w", err)
	}
	endDate, err := parseDate(r.EndDate)
	if err != nil {
		return bracket.HistoryRecord{}, fmt.Errorf("bad end_date: %w", err)
	}
	savedAt, err := time.Parse(time.RFC3339, r.SavedAt)
	if err != nil {
		return bracket.HistoryRecord{}, fmt.Errorf("bad saved_at: %w", err)
	}

	return bracket.HistoryRecord{
		ID:         r.TournamentID,
		Players:    players,
		Completed:  r.Completed,
		StartDate:  startDate,
		EndDate:    endDate,
		MatchCount: r.MatchCount,
		Timestamp:  savedAt,
	}, nil
}

// SaveRecord appends the record and trims the table down to the retention cap
// in the same transaction.
func (s *HistoryStore) SaveRecord(ctx context.Context, record bracket.HistoryRecord) error {
	row, err := toRow(record)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `INSERT INTO history_records (tournament_id, players, completed, start_date, end_date, match_count, saved_at)
		VALUES (:tournament_id, :players, :completed, :start_date, :end_date, :match_count, :saved_at)`, row)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM history_records WHERE id NOT IN
		(SELECT id FROM history_records ORDER BY id DESC LIMIT ?)`, historyLimit)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (s *HistoryStore) GetRecords(ctx context.Context) ([]bracket.HistoryRecord, error) {
	var rows []historyRow
	err := s.db.SelectContext(ctx, &rows, "SELECT * FROM history_records ORDER BY id ASC")
	if err != nil {
		return nil, err
	}

	records := make([]bracket.HistoryRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
