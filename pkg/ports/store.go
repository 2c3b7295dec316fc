package ports

import (
	"context"

	"github.com/aretw0/viterbi/pkg/domain"
)

// ModelStore is a ModelLoader that also accepts writes.
type ModelStore interface {
	ModelLoader

	// Save validates and persists def under def.Name, replacing any
	// previous definition with that name.
	Save(ctx context.Context, def *domain.Definition) error

	// Delete removes the named definition. Deleting a missing model is not an error.
	Delete(ctx context.Context, name string) error
}
