// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// IndexDocumentRepository defines the secondary port for the sprint index document.
// The document is handled as opaque bytes; field edits happen in the core.
type IndexDocumentRepository interface {
	// Path returns the resolved location of the document.
	Path() string

	// Exists reports whether the document is present.
	Exists(ctx context.Context) (bool, error)

	// Read returns the full document content.
	Read(ctx context.Context) ([]byte, error)
}

// ActivityLogRepository defines the secondary port for the append-only activity log.
type ActivityLogRepository interface {
	// Path returns the resolved location of the live log.
	Path() string

	// ArchiveDir returns the directory rotated archives are written to.
	ArchiveDir() string

	// Exists reports whether the live log is present.
	Exists(ctx context.Context) (bool, error)

	// AppendLine appends a single newline-terminated line.
	AppendLine(ctx context.Context, line string) error

	// ReadLines returns every line of the live log without terminators.
	ReadLines(ctx context.Context) ([]string, error)

	// Follow calls fn for each line appended after the call starts,
	// until ctx is cancelled.
	Follow(ctx context.Context, fn func(line string)) error
}
