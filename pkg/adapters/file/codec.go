package file

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/viterbi/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Extensions recognised as model definitions, in lookup order.
var Extensions = []string{".yaml", ".yml", ".json"}

// Load reads a single definition from path. The format follows the file
// extension: JSON for .json, YAML otherwise. A definition without a name
// takes the file name without extension.
func Load(path string) (*domain.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file: %w", err)
	}

	def, err := Unmarshal(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

// Save writes def to path atomically, encoded by the path's extension.
func Save(path string, def *domain.Definition) error {
	data, err := Marshal(filepath.Ext(path), def)
	if err != nil {
		return err
	}
	return writeAtomic(path, data)
}

// Unmarshal decodes a definition in the format named by ext.
func Unmarshal(ext string, data []byte) (*domain.Definition, error) {
	var def domain.Definition
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
	default:
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDefinition, err)
		}
	}
	return &def, nil
}

// Marshal encodes def in the format named by ext.
func Marshal(ext string, def *domain.Definition) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		data, err := json.MarshalIndent(def, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal model: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(def)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal model: %w", err)
		}
		return data, nil
	}
}

// writeAtomic writes to a temporary file in the destination directory, syncs
// it and renames it over path.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to ensure model directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, "tmp-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// os.Rename fails on Windows when the destination exists.
	if _, err := os.Stat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing model file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
