package filesystem

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/example/trinity/internal/ports/secondary"
)

// ActivityLogRepository implements secondary.ActivityLogRepository on a plain text file.
type ActivityLogRepository struct {
	path       string
	archiveDir string
}

// NewActivityLogRepository creates a repository for the live log at path.
// Rotated archives go to archiveDir.
func NewActivityLogRepository(path, archiveDir string) *ActivityLogRepository {
	return &ActivityLogRepository{path: path, archiveDir: archiveDir}
}

// Path returns the live log location.
func (r *ActivityLogRepository) Path() string {
	return r.path
}

// ArchiveDir returns the rotation target directory.
func (r *ActivityLogRepository) ArchiveDir() string {
	return r.archiveDir
}

// Exists reports whether the live log is a regular file.
func (r *ActivityLogRepository) Exists(ctx context.Context) (bool, error) {
	info, err := os.Stat(r.path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", r.path, err)
	}
	return !info.IsDir(), nil
}

// AppendLine appends line plus a newline. The log is never created here.
// A log whose last line lacks a terminator gets one first, so the new entry
// always starts on its own line.
func (r *ActivityLogRepository) AppendLine(ctx context.Context, line string) error {
	f, err := os.OpenFile(r.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", r.path, err)
	}

	entry := line + "\n"
	if size := info.Size(); size > 0 {
		last := make([]byte, 1)
		if _, err := f.ReadAt(last, size-1); err != nil {
			return fmt.Errorf("failed to read %s: %w", r.path, err)
		}
		if last[0] != '\n' {
			entry = "\n" + entry
		}
	}

	if _, err := f.WriteString(entry); err != nil {
		return fmt.Errorf("failed to append to %s: %w", r.path, err)
	}
	return nil
}

// ReadLines returns every line without its "\n" terminator.
// Carriage returns are kept so CRLF logs survive a rotation unchanged.
func (r *ActivityLogRepository) ReadLines(ctx context.Context) ([]string, error) {
	content, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}
	return splitLines(content), nil
}

// Follow watches the log directory and calls fn for every complete line
// appended after Follow starts. A rotation shrinks the file; following then
// resumes from the new end. Follow returns nil when ctx is cancelled.
func (r *ActivityLogRepository) Follow(ctx context.Context, fn func(line string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: rotation replaces the file by rename.
	if err := watcher.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(r.path), err)
	}

	info, err := os.Stat(r.path)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", r.path, err)
	}
	offset := info.Size()
	name := filepath.Base(r.path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			offset, err = r.emitFrom(offset, fn)
			if err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}

// emitFrom reports the complete lines past offset and returns the new offset.
// A trailing partial line is left for the next event.
func (r *ActivityLogRepository) emitFrom(offset int64, fn func(line string)) (int64, error) {
	f, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return offset, nil
	}
	if err != nil {
		return offset, fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return offset, fmt.Errorf("failed to stat %s: %w", r.path, err)
	}
	if info.Size() < offset {
		return info.Size(), nil
	}

	if _, err := f.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("failed to seek %s: %w", r.path, err)
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return offset, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return offset, nil
	}
	for _, line := range splitLines(data[:end+1]) {
		fn(line)
	}
	return offset + int64(end+1), nil
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	return strings.Split(text, "\n")
}

var _ secondary.ActivityLogRepository = (*ActivityLogRepository)(nil)
