package loam

import (
	"fmt"
	"path/filepath"

	"github.com/aretw0/loam"
)

// Open initializes a read-only, strict Loam repository at dir and wraps it in a Loader.
// Strict mode makes every adapter (JSON, Markdown/YAML) return json.Number for numbers.
func Open(dir string) (*Loader, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	return New(loam.NewTypedRepository[ActionMetadata](repo)), nil
}
