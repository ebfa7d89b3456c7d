package catalogue

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/goap/pkg/domain"
)

// Load reads a catalogue file, picking the decoder from the extension.
// Anything that is not .json is read as YAML.
func Load(path string) (domain.Catalogue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		return DecodeJSON(data)
	}
	return DecodeYAML(data)
}

// Save writes the catalogue to path in the JSON triple format.
func Save(path string, c domain.Catalogue) error {
	data, err := EncodeJSON(c)
	if err != nil {
		return fmt.Errorf("failed to encode catalogue: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalogue: %w", err)
	}
	return nil
}

// FileLoader serves a single catalogue file. The file is read on every call.
type FileLoader struct {
	Path string
}

// NewFileLoader creates a loader for the file at path.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{Path: path}
}

// LoadCatalogue implements ports.CatalogueLoader.
func (l *FileLoader) LoadCatalogue(ctx context.Context) (domain.Catalogue, error) {
	return Load(l.Path)
}

// ListActions implements ports.CatalogueLoader.
func (l *FileLoader) ListActions(ctx context.Context) ([]string, error) {
	c, err := Load(l.Path)
	if err != nil {
		return nil, err
	}
	return c.Keys(), nil
}
