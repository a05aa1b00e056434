package primary

import "context"

// ActivityService defines the primary port for the activity log.
type ActivityService interface {
	// AppendEntry timestamps text, appends it and applies the rotation policy.
	AppendEntry(ctx context.Context, text string) (*AppendEntryResponse, error)

	// TailEntries returns up to limit of the most recent lines.
	TailEntries(ctx context.Context, limit int) ([]string, error)

	// FollowEntries calls fn for each newly appended line until ctx is done.
	FollowEntries(ctx context.Context, fn func(line string)) error
}

// AppendEntryResponse contains the result of appending an entry.
type AppendEntryResponse struct {
	Entry       string
	Lines       int    // Live log line count after append and rotation
	Rotated     bool
	ArchivePath string // Set when Rotated
	Archived    int    // Lines moved out of the live log
}
