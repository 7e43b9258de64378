// Package memory provides an in-memory audit trail for single-process
// deployments and tests.
package memory

import (
	"context"
	"sync"

	"tokengate/pkg/platform/audit"
)

type Store struct {
	mu     sync.RWMutex
	events []audit.Event
}

func New() *Store {
	return &Store{}
}

// Append records the event. Never fails; the error return satisfies the
// Trail contract for stores that can.
func (s *Store) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// List returns all events, oldest first.
func (s *Store) List(_ context.Context) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}
