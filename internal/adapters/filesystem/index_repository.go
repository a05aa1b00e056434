package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/example/trinity/internal/ports/secondary"
)

// IndexDocumentRepository implements secondary.IndexDocumentRepository on a markdown file.
type IndexDocumentRepository struct {
	path string
}

// NewIndexDocumentRepository creates a repository for the index document at path.
func NewIndexDocumentRepository(path string) *IndexDocumentRepository {
	return &IndexDocumentRepository{path: path}
}

// Path returns the document location.
func (r *IndexDocumentRepository) Path() string {
	return r.path
}

// Exists reports whether the document is a regular file.
func (r *IndexDocumentRepository) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(r.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.path, err)
	}
	return !info.IsDir(), nil
}

// Read returns the full document.
func (r *IndexDocumentRepository) Read(ctx context.Context) ([]byte, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return content, nil
}

var _ secondary.IndexDocumentRepository = (*IndexDocumentRepository)(nil)
