package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"game-portal/internal/bracket"
	"game-portal/internal/store"
	"game-portal/internal/utils"
)

type TournamentService struct {
	store *store.TournamentStore
	rng   *rand.Rand
}

// NewTournamentService wires the service over the live-tournament store. Pass
// a seeded rng to make bracket seeding deterministic in tests; nil gets a
// time-seeded one.
func NewTournamentService(store *store.TournamentStore, rng *rand.Rand) *TournamentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &TournamentService{store: store, rng: rng}
}

func (s *TournamentService) CreateTournament(ctx context.Context) (*bracket.Tournament, error) {
	t := bracket.NewTournament()
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// AddPlayer registers a player on the roster. Names are unique ignoring case.
func (s *TournamentService) AddPlayer(ctx context.Context, tournamentID, name, userID string) (*bracket.Player, error) {
	var player *bracket.Player

	err := s.store.Update(ctx, tournamentID, func(t *bracket.Tournament) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return bracket.ErrEmptyName
		}
		for _, p := range t.Players {
			if strings.EqualFold(p.Name, name) {
				return bracket.ErrDuplicateName
			}
		}

		player = &bracket.Player{
			ID:     playerID(t.NextPlayerSeq),
			Name:   name,
			UserID: utils.StringOrNil(userID),
		}
		t.NextPlayerSeq++
		t.Players = append(t.Players, player)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return player, nil
}

// RemovePlayer drops a player from the roster while it is still open. Once
// matches exist the roster is frozen.
func (s *TournamentService) RemovePlayer(ctx context.Context, tournamentID, playerID string) error {
	return s.store.Update(ctx, tournamentID, func(t *bracket.Tournament) error {
		if len(t.Matches) > 0 {
			return bracket.ErrRosterLocked
		}
		for i, p := range t.Players {
			if p.ID == playerID {
				t.Players = append(t.Players[:i], t.Players[i+1:]...)
				return nil
			}
		}
		return bracket.ErrPlayerNotFound
	})
}

// Start freezes the roster, seeds it by shuffle, builds the bracket and
// returns the first match. Round-1 matches are only ever created with both
// players assigned, so the first match is always playable.
func (s *TournamentService) Start(ctx context.Context, tournamentID string) (*bracket.Match, error) {
	var first *bracket.Match

	err := s.store.Update(ctx, tournamentID, func(t *bracket.Tournament) error {
		if len(t.Matches) > 0 {
			return bracket.ErrAlreadyStarted
		}
		if len(t.Players) < 2 {
			return bracket.ErrNotEnoughPlayers
		}

		seeded := shuffleSeeding(t.Players, s.rng)
		matches, err := generateBracket(seeded)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		t.Matches = matches
		t.StartDate = &now
		t.CurrentMatchIndex = 0
		t.State = bracket.StateInProgress
		first = matches[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	return first, nil
}

// Summarize snapshots the tournament as a history record. Persisting the
// record happens outside the tournament lock, see HistoryService.
func (s *TournamentService) Summarize(ctx context.Context, tournamentID string) (bracket.HistoryRecord, error) {
	var record bracket.HistoryRecord
	err := s.store.View(ctx, tournamentID, func(t *bracket.Tournament) error {
		record = t.Summarize(time.Now().UTC())
		return nil
	})
	return record, err
}

func playerID(seq int) string {
	return fmt.Sprintf("player_%d", seq)
}
