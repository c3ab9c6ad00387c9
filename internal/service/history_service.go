package service

import (
	"context"
	"fmt"

	"game-portal/internal/bracket"
	"game-portal/internal/store"
)

// HistoryService persists tournament summaries. It never touches live match
// state, so a failed save leaves the in-memory tournament fully intact.
type HistoryService struct {
	store *store.HistoryStore
}

func NewHistoryService(store *store.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

func (s *HistoryService) Save(ctx context.Context, record bracket.HistoryRecord) (bracket.HistoryRecord, error) {
	if err := s.store.SaveRecord(ctx, record); err != nil {
		return bracket.HistoryRecord{}, fmt.Errorf("failed to save tournament history: %w", err)
	}
	return record, nil
}

func (s *HistoryService) LoadHistory(ctx context.Context) ([]bracket.HistoryRecord, error) {
	records, err := s.store.GetRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load tournament history: %w", err)
	}
	return records, nil
}
