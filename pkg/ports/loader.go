package ports

import (
	"context"

	"github.com/aretw0/viterbi/pkg/domain"
)

// ModelLoader defines how the engine retrieves model definitions.
type ModelLoader interface {
	// Get returns the definition stored under name.
	// Returns domain.ErrModelNotFound if there is none.
	Get(ctx context.Context, name string) (*domain.Definition, error)

	// List returns the names of every available model, sorted.
	List(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
type Watchable interface {
	// Watch returns a channel that receives the name of each model whose
	// definition changed. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
