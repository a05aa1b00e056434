package filesystem_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trinity/internal/adapters/filesystem"
)

func TestIndexDocumentRepository(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "INDEX.md")
	repo := filesystem.NewIndexDocumentRepository(path)
	ctx := context.Background()

	exists, err := repo.Exists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.Read(ctx)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("---\nblocks: 1\n---\n"), 0o644))

	exists, err = repo.Exists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	content, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "---\nblocks: 1\n---\n", string(content))
	assert.Equal(t, path, repo.Path())
}

func TestIndexDocumentRepository_DirectoryIsNotADocument(t *testing.T) {
	dir := t.TempDir()
	repo := filesystem.NewIndexDocumentRepository(dir)

	exists, err := repo.Exists(context.Background())
	require.NoError(t, err)
	assert.False(t, exists)
}
