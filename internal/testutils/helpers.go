package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// WriteDocuments writes action documents (file name to content) into dir.
func WriteDocuments(t *testing.T, dir string, docs map[string]string) {
	t.Helper()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

// NewCatalogueRepo initializes a Loam repository in a temporary directory and
// fills it with one action document per entry of docs. It returns the
// absolute directory and the repository.
func NewCatalogueRepo(t *testing.T, docs map[string]string, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	dir, err := filepath.Abs(t.TempDir())
	require.NoError(t, err)

	repo, err := loam.Init(dir, opts...)
	require.NoError(t, err, "init catalogue repository")

	WriteDocuments(t, dir, docs)
	return dir, repo
}
