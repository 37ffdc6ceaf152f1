package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/crickd/insights-engine/internal/model"
)

// MemoryStore implements Store with in-memory maps. Used for testing and
// development. Not suitable for production (no persistence).
type MemoryStore struct {
	mu        sync.RWMutex
	matches   map[string]*model.Match
	ledgers   map[string][]model.Delivery
	snapshots map[string]*model.MatchSnapshot
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches:   make(map[string]*model.Match),
		ledgers:   make(map[string][]model.Delivery),
		snapshots: make(map[string]*model.MatchSnapshot),
	}
}

func (s *MemoryStore) CreateMatch(_ context.Context, m *model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.matches[m.ID]; exists {
		return fmt.Errorf("match %s already exists", m.ID)
	}

	// Store a copy to avoid external mutation.
	cp := *m
	cp.Roster = append([]model.Player(nil), m.Roster...)
	s.matches[m.ID] = &cp
	return nil
}

func (s *MemoryStore) GetMatch(_ context.Context, id string) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	if !ok {
		return nil, fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	cp := *m
	cp.Roster = append([]model.Player(nil), m.Roster...)
	return &cp, nil
}

func (s *MemoryStore) ListMatches(_ context.Context) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, *m)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})
	return matches, nil
}

func (s *MemoryStore) SetMatchStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.matches[id]
	if !ok {
		return fmt.Errorf("match %s: %w", id, ErrNotFound)
	}
	m.Status = status
	return nil
}

func (s *MemoryStore) AppendDeliveries(_ context.Context, matchID string, deliveries []model.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[matchID]; !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	s.ledgers[matchID] = append(s.ledgers[matchID], deliveries...)
	return nil
}

func (s *MemoryStore) GetDeliveries(_ context.Context, matchID string) ([]model.Delivery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.matches[matchID]; !ok {
		return nil, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return append([]model.Delivery(nil), s.ledgers[matchID]...), nil
}

func (s *MemoryStore) CountDeliveries(_ context.Context, matchID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.matches[matchID]; !ok {
		return 0, fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	return len(s.ledgers[matchID]), nil
}

func (s *MemoryStore) PutSnapshot(_ context.Context, matchID string, snap *model.MatchSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.matches[matchID]; !ok {
		return fmt.Errorf("match %s: %w", matchID, ErrNotFound)
	}
	cp := *snap
	s.snapshots[matchID] = &cp
	return nil
}

func (s *MemoryStore) GetSnapshot(_ context.Context, matchID string) (*model.MatchSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[matchID]
	if !ok {
		return nil, fmt.Errorf("snapshot for match %s: %w", matchID, ErrNotFound)
	}
	cp := *snap
	return &cp, nil
}
