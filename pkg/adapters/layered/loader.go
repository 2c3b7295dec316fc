// Package layered stacks a primary model source over a read-only fallback,
// so built-in models stay available next to user-provided ones.
package layered

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/viterbi/pkg/domain"
	"github.com/aretw0/viterbi/pkg/ports"
)

// Loader resolves names against Primary first, then Fallback.
type Loader struct {
	Primary  ports.ModelLoader
	Fallback ports.ModelLoader
}

// Store is a Loader whose primary layer accepts writes.
type Store struct {
	Loader
	primary ports.ModelStore
}

// New returns a *Store when primary is a ports.ModelStore and a *Loader
// otherwise, so callers can type-assert for writability.
func New(primary, fallback ports.ModelLoader) ports.ModelLoader {
	l := Loader{Primary: primary, Fallback: fallback}
	if store, ok := primary.(ports.ModelStore); ok {
		return &Store{Loader: l, primary: store}
	}
	return &l
}

// Get returns the primary definition, or the fallback one when the primary
// has none.
func (l *Loader) Get(ctx context.Context, name string) (*domain.Definition, error) {
	def, err := l.Primary.Get(ctx, name)
	if err == nil || !errors.Is(err, domain.ErrModelNotFound) || l.Fallback == nil {
		return def, err
	}
	return l.Fallback.Get(ctx, name)
}

// List returns the sorted union of both layers.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	names, err := l.Primary.List(ctx)
	if err != nil {
		return nil, err
	}
	if l.Fallback != nil {
		more, err := l.Fallback.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("fallback: %w", err)
		}
		names = append(names, more...)
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Watch forwards change notifications from the primary layer.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := l.Primary.(ports.Watchable)
	if !ok {
		return nil, fmt.Errorf("primary loader does not support watching")
	}
	return w.Watch(ctx)
}

// Save writes to the primary layer. A saved model shadows a fallback model
// of the same name.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	return s.primary.Save(ctx, def)
}

// Delete removes the model from the primary layer. A name served only by the
// fallback cannot be deleted and yields domain.ErrReadOnly.
func (s *Store) Delete(ctx context.Context, name string) error {
	if s.Fallback != nil {
		_, err := s.primary.Get(ctx, name)
		if errors.Is(err, domain.ErrModelNotFound) {
			if _, ferr := s.Fallback.Get(ctx, name); ferr == nil {
				return fmt.Errorf("%w: %s comes from the fallback layer", domain.ErrReadOnly, name)
			}
		}
	}
	return s.primary.Delete(ctx, name)
}
