package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/viterbi/pkg/domain"
)

// Loader adapts a Loam repository to ports.ModelLoader.
// It is read-only: models are edited as documents on disk.
type Loader struct {
	Repo *loam.TypedRepository[ModelMetadata]
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[ModelMetadata]) *Loader {
	return &Loader{
		Repo: repo,
	}
}

// Open initializes a read-only Loam repository at dir and wraps it.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
		loam.WithVersioning(false),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open model directory %s: %w", dir, err)
	}
	return New(loam.NewTypedRepository[ModelMetadata](repo)), nil
}

// Get returns the model named name. The name is the metadata `name` when set,
// otherwise the document path without its extension.
func (l *Loader) Get(ctx context.Context, name string) (*domain.Definition, error) {
	// Fast path: the document is named after the model.
	if doc, err := l.Repo.Get(ctx, name); err == nil {
		if modelName(doc.ID, doc.Data) == name {
			return doc.Data.toDefinition(name, doc.Content)
		}
	}

	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}
	for _, doc := range docs {
		if modelName(doc.ID, doc.Data) == name {
			return doc.Data.toDefinition(name, doc.Content)
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
}

// List returns every model name in the repository, sorted.
// Two documents resolving to the same name are reported as an error.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	names := make([]string, 0, len(docs))
	for _, doc := range docs {
		name := modelName(doc.ID, doc.Data)
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: model '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Watch implements ports.Watchable. It emits the document ID, without
// extension, of every changed model file.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	events, err := l.Repo.Watch(ctx, "**/*.{md,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func modelName(docID string, meta ModelMetadata) string {
	if meta.Name != "" {
		return meta.Name
	}
	return trimExtension(docID)
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
