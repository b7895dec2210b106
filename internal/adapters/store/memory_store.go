package store

import (
	"context"
	"errors"
	"sync"

	"github.com/berkanunver-maker/subwatch-ai/internal/core"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a subscription is not in the store
	ErrNotFound = errors.New("subscription not found")
	// ErrDuplicateID is returned when creating over an existing ID
	ErrDuplicateID = errors.New("subscription id already exists")
)

// MemoryStore is an in-memory implementation of the SubscriptionRepository
// interface. It keeps insertion order so lists are stable across calls.
type MemoryStore struct {
	mu     sync.RWMutex
	subs   map[string]*core.Subscription
	order  []string
	logger *zap.Logger
}

// NewMemoryStore creates a new in-memory subscription store
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{
		subs:   make(map[string]*core.Subscription),
		logger: logger,
	}
}

// Create stores a new subscription
func (s *MemoryStore) Create(ctx context.Context, sub *core.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub.ID]; ok {
		return ErrDuplicateID
	}

	copied := *sub
	s.subs[sub.ID] = &copied
	s.order = append(s.order, sub.ID)
	return nil
}

// GetByID retrieves a subscription by its ID
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*core.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *sub
	return &copied, nil
}

// List returns all subscriptions in insertion order
func (s *MemoryStore) List(ctx context.Context) ([]*core.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs := make([]*core.Subscription, 0, len(s.order))
	for _, id := range s.order {
		copied := *s.subs[id]
		subs = append(subs, &copied)
	}
	return subs, nil
}

// Update replaces the stored subscription with the same ID
func (s *MemoryStore) Update(ctx context.Context, sub *core.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[sub.ID]; !ok {
		return ErrNotFound
	}
	copied := *sub
	s.subs[sub.ID] = &copied
	return nil
}

// Delete removes a subscription by its ID
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subs[id]; !ok {
		return ErrNotFound
	}
	delete(s.subs, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}
