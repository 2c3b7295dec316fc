package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/viterbi/pkg/adapters/memory"
	"github.com/aretw0/viterbi/pkg/domain"
)

// Store implements ports.ModelStore over a directory of definition files,
// one file per model named after it.
type Store struct {
	BasePath string
	// Ext is the extension used for new files. Defaults to ".yaml".
	Ext string
}

// New creates a new Store rooted at basePath.
// If basePath is empty, it defaults to ".viterbi/models".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".viterbi", "models")
	}
	return &Store{BasePath: basePath, Ext: ".yaml"}
}

// Save validates def and writes it to <BasePath>/<name><Ext>.
func (s *Store) Save(ctx context.Context, def *domain.Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", domain.ErrInvalidDefinition)
	}
	if err := def.Validate(); err != nil {
		return err
	}
	if !validName(def.Name) {
		return fmt.Errorf("%w: name %q cannot be used as a file name", domain.ErrInvalidDefinition, def.Name)
	}

	// Drop copies in other formats so Get stays unambiguous.
	if err := s.Delete(ctx, def.Name); err != nil {
		return err
	}
	return Save(filepath.Join(s.BasePath, def.Name+s.Ext), def)
}

// Get loads the named model from the first matching file.
func (s *Store) Get(ctx context.Context, name string) (*domain.Definition, error) {
	if !validName(name) {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
	}
	for _, ext := range Extensions {
		def, err := Load(filepath.Join(s.BasePath, name+ext))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		def.Name = name
		return def, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, name)
}

// Delete removes every file holding the named model.
func (s *Store) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	for _, ext := range Extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete model file: %w", err)
		}
	}
	return nil
}

// List returns the names of all model files, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var names []string
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || !slices.Contains(Extensions, ext) || strings.HasPrefix(entry.Name(), "tmp-") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		if !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// LoadDir reads every definition file directly under dir into a memory store.
// Files that fail to parse or validate abort the load.
func LoadDir(dir string) (*memory.Store, error) {
	fs := New(dir)
	names, err := fs.List(context.Background())
	if err != nil {
		return nil, err
	}

	store := memory.NewStore()
	for _, name := range names {
		def, err := fs.Get(context.Background(), name)
		if err != nil {
			return nil, err
		}
		if _, err := def.Compile(); err != nil {
			return nil, err
		}
		if err := store.Save(context.Background(), def); err != nil {
			return nil, err
		}
	}
	return store, nil
}
