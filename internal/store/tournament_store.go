package store

import (
	"context"
	"sync"

	"game-portal/internal/bracket"
)

// TournamentStore keeps live tournaments in memory. The engine mutates a
// tournament in place with no internal locking, so every access goes through
// Update/View which serialize work per tournament.
type TournamentStore struct {
	mu          sync.RWMutex
	tournaments map[string]*liveTournament
}

type liveTournament struct {
	mu sync.Mutex
	t  *bracket.Tournament
}

func NewTournamentStore() *TournamentStore {
	return &TournamentStore{tournaments: make(map[string]*liveTournament)}
}

func (s *TournamentStore) Create(_ context.Context, t *bracket.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tournaments[t.ID.String()] = &liveTournament{t: t}
	return nil
}

func (s *TournamentStore) get(id string) (*liveTournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lt, ok := s.tournaments[id]
	if !ok {
		return nil, bracket.ErrTournamentNotFound
	}
	return lt, nil
}

// Update runs fn with exclusive access to the tournament. fn may mutate it;
// returning an error from fn is passed through unchanged.
func (s *TournamentStore) Update(_ context.Context, id string, fn func(*bracket.Tournament) error) error {
	lt, err := s.get(id)
	if err != nil {
		return err
	}

	lt.mu.Lock()
	defer lt.mu.Unlock()
	return fn(lt.t)
}

// View is Update for read-only callers; it takes the same lock because the
// tournament is mutated in place by concurrent writers.
func (s *TournamentStore) View(ctx context.Context, id string, fn func(*bracket.Tournament) error) error {
	return s.Update(ctx, id, fn)
}
