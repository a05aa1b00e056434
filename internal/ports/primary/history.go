package primary

import "context"

// HistoryService defines the primary port for the field change audit trail.
type HistoryService interface {
	// Enabled reports whether an audit store is configured.
	Enabled() bool

	// ListChanges retrieves field changes matching the filters, newest first.
	ListChanges(ctx context.Context, filters HistoryFilters) ([]*FieldChange, error)
}

// FieldChange represents an audited change at the port boundary.
type FieldChange struct {
	ID        string
	Actor     string
	Document  string
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt string
}

// HistoryFilters contains filter options for querying the audit trail.
type HistoryFilters struct {
	Field string
	Limit int
}
