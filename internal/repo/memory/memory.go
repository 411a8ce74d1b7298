package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/archivemon/internal/domain"
	"github.com/hamed0406/archivemon/internal/repo"
)

var _ repo.ObservationStore = (*Store)(nil)

// Store keeps every observation in memory for the life of the process.
// Each endpoint's history carries its own lock, so concurrent probes of
// different endpoints append without contending; appends to the same
// endpoint are serialized.
type Store struct {
	mu        sync.RWMutex
	histories map[string]*history
}

type history struct {
	mu           sync.Mutex
	observations domain.History
}

func New() *Store {
	return &Store{histories: make(map[string]*history)}
}

func (s *Store) Record(ctx context.Context, obs domain.Observation) error {
	h := s.historyOf(obs.EndpointName)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.observations = append(h.observations, obs)
	return nil
}

func (s *Store) HistoryFor(ctx context.Context, endpointName string) (domain.History, error) {
	s.mu.RLock()
	h := s.histories[endpointName]
	s.mu.RUnlock()
	if h == nil {
		return nil, nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(domain.History, len(h.observations))
	copy(out, h.observations)
	return out, nil
}

// historyOf returns the per-endpoint history, creating it on first probe.
func (s *Store) historyOf(name string) *history {
	s.mu.RLock()
	h := s.histories[name]
	s.mu.RUnlock()
	if h != nil {
		return h
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if h = s.histories[name]; h == nil {
		h = &history{}
		s.histories[name] = h
	}
	return h
}
