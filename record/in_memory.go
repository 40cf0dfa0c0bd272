package record

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/hupe1980/agentduel/core"
)

// ErrNotFound is returned when no transcript exists for the requested ID.
var ErrNotFound = errors.New("transcript not found")

// InMemoryStore is a volatile TranscriptStore implementation storing
// transcripts in a process-local map. It is safe for concurrent access.
// Each stored and returned transcript is cloned to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu          sync.RWMutex
	transcripts map[string]*core.Transcript
}

// NewInMemoryStore constructs an empty in-memory transcript store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{transcripts: make(map[string]*core.Transcript)}
}

// Save implements core.TranscriptStore.
func (s *InMemoryStore) Save(t *core.Transcript) error {
	if t == nil || t.ID == "" {
		return fmt.Errorf("transcript must have an ID")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.transcripts[t.ID] = t.Clone()

	return nil
}

// Get implements core.TranscriptStore.
func (s *InMemoryStore) Get(id string) (*core.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transcripts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return t.Clone(), nil
}

// List implements core.TranscriptStore, returning transcripts ordered by
// start time.
func (s *InMemoryStore) List() ([]*core.Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*core.Transcript, 0, len(s.transcripts))
	for _, t := range s.transcripts {
		out = append(out, t.Clone())
	}

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })

	return out, nil
}
