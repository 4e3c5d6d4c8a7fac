// Package view persists dashboard table views between requests.
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	dashview "tenantdash/internal/dashboard/view"
	id "tenantdash/pkg/domain"
	"tenantdash/pkg/platform/sentinel"
)

type memoryEntry struct {
	view      *dashview.View
	expiresAt time.Time
}

// InMemoryStore keeps views in process memory with a sliding TTL: both Save
// and Find push the expiry out by ttl. Views are copied on the way in and out,
// so callers may mutate what they get.
type InMemoryStore struct {
	mu    sync.Mutex
	views map[id.ViewID]memoryEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewInMemory constructs an empty store. A zero ttl keeps views until deleted.
func NewInMemory(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		views: make(map[id.ViewID]memoryEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// WithClock replaces the store's time source.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

func (s *InMemoryStore) Save(_ context.Context, v *dashview.View) error {
	if v == nil {
		return fmt.Errorf("view is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictExpired(now)
	entry := memoryEntry{view: v.Clone()}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
	}
	s.views[v.ID] = entry
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, viewID id.ViewID) (*dashview.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.views[viewID]
	if !ok {
		return nil, fmt.Errorf("view not found: %w", sentinel.ErrNotFound)
	}
	now := s.now()
	if s.expired(entry, now) {
		delete(s.views, viewID)
		return nil, fmt.Errorf("view expired: %w", sentinel.ErrNotFound)
	}
	if s.ttl > 0 {
		entry.expiresAt = now.Add(s.ttl)
		s.views[viewID] = entry
	}
	return entry.view.Clone(), nil
}

func (s *InMemoryStore) Delete(_ context.Context, viewID id.ViewID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, viewID)
	return nil
}

// Len reports the number of stored views, expired or not.
func (s *InMemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

func (s *InMemoryStore) expired(e memoryEntry, now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// evictExpired must be called with mu held.
func (s *InMemoryStore) evictExpired(now time.Time) {
	for key, e := range s.views {
		if s.expired(e, now) {
			delete(s.views, key)
		}
	}
}
