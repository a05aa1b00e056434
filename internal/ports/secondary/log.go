package secondary

import "context"

// AuditWriter defines the interface for writing audit entries.
// Implementations extract the actor from context.
type AuditWriter interface {
	// LogUpdate records that field in document changed from oldValue to newValue.
	LogUpdate(ctx context.Context, document, field, oldValue, newValue string) error
}

// FieldChangeRepository defines the secondary port for audit persistence.
type FieldChangeRepository interface {
	// Create persists a new field change.
	Create(ctx context.Context, change *FieldChangeRecord) error

	// List retrieves changes matching the filters, newest first.
	List(ctx context.Context, filters FieldChangeFilters) ([]*FieldChangeRecord, error)
}

// FieldChangeRecord represents a field change as stored in persistence.
type FieldChangeRecord struct {
	ID        string
	Actor     string
	Document  string
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt string
}

// FieldChangeFilters contains filter options for querying field changes.
type FieldChangeFilters struct {
	Document string
	Field    string
	Actor    string
	Limit    int
}
