package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/avolokh/lazaret/internal/model"
)

// MemoryStore is an in-process QuarantineStore. The single mutex around
// Resolve gives the compare-and-set guarantee: status is checked and
// written under the same critical section.
type MemoryStore struct {
	mu              sync.Mutex
	items           map[string]model.QuarantineItem
	reconciliations []model.ReconciliationRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]model.QuarantineItem)}
}

// Create stores a new pending item.
func (s *MemoryStore) Create(_ context.Context, item model.QuarantineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID]; exists {
		return fmt.Errorf("quarantine item %s already exists", item.ID)
	}
	s.items[item.ID] = item
	return nil
}

// Get returns an item by ID.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.QuarantineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrQuarantineNotFound, id)
	}
	return &item, nil
}

// ListPending returns items awaiting review, oldest first.
func (s *MemoryStore) ListPending(_ context.Context, limit int) ([]model.QuarantineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pending []model.QuarantineItem
	for _, item := range s.items {
		if item.Status == model.StatusPendingReview {
			pending = append(pending, item)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

// Resolve atomically transitions a pending item to resolved.
func (s *MemoryStore) Resolve(_ context.Context, id string, verdict model.UserVerdict) (*model.QuarantineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrQuarantineNotFound, id)
	}
	if item.Status != model.StatusPendingReview {
		return nil, fmt.Errorf("%w: %s", model.ErrAlreadyResolved, id)
	}

	now := time.Now().UTC()
	item.Status = model.StatusResolved
	item.FinalVerdict = verdict.Verdict
	item.ResolvedAt = &now
	s.items[id] = item

	return &item, nil
}

// SaveReconciliation appends the record.
func (s *MemoryStore) SaveReconciliation(_ context.Context, rec model.ReconciliationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reconciliations = append(s.reconciliations, rec)
	return nil
}

// Reconciliations returns a copy of the recorded reconciliations.
func (s *MemoryStore) Reconciliations() []model.ReconciliationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ReconciliationRecord, len(s.reconciliations))
	copy(out, s.reconciliations)
	return out
}
