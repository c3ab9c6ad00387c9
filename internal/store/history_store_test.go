package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"game-portal/internal/bracket"
	"game-portal/internal/utils"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database and applies migrations
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite3", "file::memory:")
	require.NoError(t, err, "Failed to connect to in-memory DB")

	_, err = database.Exec("PRAGMA foreign_keys = ON;")
	require.NoError(t, err)

	driver, err := sqlite3.WithInstance(database.DB, &sqlite3.Config{})
	require.NoError(t, err, "Failed to create migrate driver instance")

	m, err := migrate.NewWithDatabaseInstance(
		"file://../../migrations",
		"sqlite3",
		driver,
	)
	require.NoError(t, err, "Failed to create migrate instance")

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, "Failed to apply migrations")
	}

	return database
}

func testRecord(id string, savedAt time.Time) bracket.HistoryRecord {
	start := savedAt.Add(-time.Hour)
	return bracket.HistoryRecord{
		ID: id,
		Players: []bracket.HistoryPlayer{
			{ID: "player_1", Name: "Alice", UserID: utils.Ptr("user-1"), Wins: 2, Losses: 0},
			{ID: "player_2", Name: "Bob", Wins: 0, Losses: 1},
		},
		Completed:  true,
		StartDate:  &start,
		EndDate:    &savedAt,
		MatchCount: 3,
		Timestamp:  savedAt,
	}
}

func TestHistoryStoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewHistoryStore(db)
	ctx := context.Background()

	savedAt := time.Now().UTC().Truncate(time.Second)
	record := testRecord("tournament-1", savedAt)

	require.NoError(t, s.SaveRecord(ctx, record))

	records, err := s.GetRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Players, got.Players)
	assert.True(t, got.Completed)
	require.NotNil(t, got.StartDate)
	assert.Equal(t, record.StartDate.UTC(), got.StartDate.UTC())
	require.NotNil(t, got.EndDate)
	assert.Equal(t, record.EndDate.UTC(), got.EndDate.UTC())
	assert.Equal(t, 3, got.MatchCount)
	assert.Equal(t, savedAt, got.Timestamp.UTC())
}

func TestHistoryStoreIncompleteTournament(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewHistoryStore(db)
	ctx := context.Background()

	record := testRecord("tournament-1", time.Now().UTC().Truncate(time.Second))
	record.Completed = false
	record.EndDate = nil

	require.NoError(t, s.SaveRecord(ctx, record))

	records, err := s.GetRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Completed)
	assert.Nil(t, records[0].EndDate)
}

func TestHistoryStoreEvictsOldest(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	s := NewHistoryStore(db)
	ctx := context.Background()

	savedAt := time.Now().UTC().Truncate(time.Second)
	for i := 1; i <= historyLimit+1; i++ {
		record := testRecord(fmt.Sprintf("tournament-%d", i), savedAt.Add(time.Duration(i)*time.Second))
		require.NoError(t, s.SaveRecord(ctx, record))
	}

	records, err := s.GetRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, historyLimit, "the cap holds after the 21st save")

	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	assert.NotContains(t, ids, "tournament-1", "the oldest record was evicted")
	assert.Contains(t, ids, "tournament-2")
	assert.Contains(t, ids, fmt.Sprintf("tournament-%d", historyLimit+1))
}
