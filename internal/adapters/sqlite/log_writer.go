package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/trinity/internal/ctxutil"
	"github.com/example/trinity/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.AuditWriter using FieldChangeRepository.
type LogWriterAdapter struct {
	repo secondary.FieldChangeRepository
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(repo secondary.FieldChangeRepository) *LogWriterAdapter {
	return &LogWriterAdapter{repo: repo}
}

// LogUpdate records a field change attributed to the actor in ctx.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, document, field, oldValue, newValue string) error {
	record := &secondary.FieldChangeRecord{
		ID:       uuid.NewString(),
		Actor:    ctxutil.ActorFromContext(ctx),
		Document: document,
		Field:    field,
		OldValue: oldValue,
		NewValue: newValue,
	}
	return w.repo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.AuditWriter = (*LogWriterAdapter)(nil)
