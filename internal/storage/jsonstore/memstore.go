package jsonstore

import (
	"context"
	"sync"
)

// MemStore is an in-memory Store used as a test double and for ephemeral
// setups. Errors can be injected per operation.
type MemStore[T any] struct {
	mu    sync.Mutex
	items []T

	// Injectable failures
	LoadErr   error
	SaveErr   error
	BackupErr error

	// BackupCount counts CreateBackup calls.
	BackupCount int
}

// NewMemStore creates an empty MemStore.
func NewMemStore[T any]() *MemStore[T] {
	return &MemStore[T]{}
}

// NewMemStoreWith creates a MemStore pre-populated with items.
func NewMemStoreWith[T any](items []T) *MemStore[T] {
	s := &MemStore[T]{}
	s.items = append(s.items, items...)
	return s
}

// LoadAll implements Store.
func (s *MemStore[T]) LoadAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out, nil
}

// SaveAll implements Store.
func (s *MemStore[T]) SaveAll(ctx context.Context, items []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.items = make([]T, len(items))
	copy(s.items, items)
	return nil
}

// CreateBackup implements Store.
func (s *MemStore[T]) CreateBackup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.BackupCount++
	return s.BackupErr
}
