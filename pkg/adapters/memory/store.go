package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/viterbi/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Definition
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store seeded with defs.
// Definitions that fail validation are skipped; use Save to see the error.
func NewStore(defs ...*domain.Definition) *Store {
	s := &Store{
		data: make(map[string]*domain.Definition),
	}
	for _, def := range defs {
		_ = s.Save(context.Background(), def)
	}
	return s
}

// Save validates and stores a copy of def.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", domain.ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return err
	}

	// Copy on write so the caller can keep mutating its value.
	copied := def.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[def.Name] = copied
	return nil
}

// Get retrieves a copy of the named definition.
func (s *Store) Get(ctx context.Context, name string) (*domain.Definition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	def, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
	}
	return def.Clone(), nil
}

// Delete removes the definition.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored model names in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}
