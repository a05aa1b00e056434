// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/trinity/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.WorkspaceAdapter for filesystem operations.
type WorkspaceAdapter struct {
	projectDir string
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter rooted at projectDir.
// If projectDir is empty, the current working directory is used.
func NewWorkspaceAdapter(projectDir string) (*WorkspaceAdapter, error) {
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		projectDir = wd
	}

	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve project directory: %w", err)
	}

	return &WorkspaceAdapter{projectDir: abs}, nil
}

// FileExists checks if a regular file exists at path.
func (a *WorkspaceAdapter) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check file: %w", err)
	}
	return !info.IsDir(), nil
}

// WriteFile replaces path with content. The content goes to a temp file in
// the same directory which is then renamed over path, so readers see either
// the old or the new file and never a partial write.
// A zero mode keeps the permissions of the file being replaced.
func (a *WorkspaceAdapter) WriteFile(ctx context.Context, path string, content []byte, mode uint32) error {
	perm := fs.FileMode(mode)
	if perm == 0 {
		perm = 0644
		if info, err := os.Stat(path); err == nil {
			perm = info.Mode().Perm()
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return fmt.Errorf("failed to sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		cleanup()
		return fmt.Errorf("failed to set permissions on %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// CreateFile writes content to a new file. It fails with an error matching
// fs.ErrExist when path is already present.
func (a *WorkspaceAdapter) CreateFile(ctx context.Context, path string, content []byte, mode uint32) error {
	perm := fs.FileMode(mode)
	if perm == 0 {
		perm = 0644
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// CreateDirectory creates a directory with all parent directories.
func (a *WorkspaceAdapter) CreateDirectory(ctx context.Context, path string, mode uint32) error {
	perm := fs.FileMode(mode)
	if perm == 0 {
		perm = 0755
	}
	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// DirectoryExists checks if a directory exists.
func (a *WorkspaceAdapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	return info.IsDir(), nil
}

// GetProjectDir returns the absolute project root.
func (a *WorkspaceAdapter) GetProjectDir() string {
	return a.projectDir
}

// ResolvePath returns rel joined to the project root; absolute paths are returned cleaned.
func (a *WorkspaceAdapter) ResolvePath(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(a.projectDir, rel)
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
