package app

import (
	"context"
	"fmt"

	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// HistoryServiceImpl implements the HistoryService interface.
type HistoryServiceImpl struct {
	changeRepo secondary.FieldChangeRepository
}

// NewHistoryService creates a new HistoryService. A nil repository means
// the audit trail is disabled.
func NewHistoryService(changeRepo secondary.FieldChangeRepository) *HistoryServiceImpl {
	return &HistoryServiceImpl{changeRepo: changeRepo}
}

// Enabled reports whether an audit store is configured.
func (s *HistoryServiceImpl) Enabled() bool {
	return s.changeRepo != nil
}

// ListChanges retrieves field changes matching the given filters.
func (s *HistoryServiceImpl) ListChanges(ctx context.Context, filters primary.HistoryFilters) ([]*primary.FieldChange, error) {
	if !s.Enabled() {
		return nil, nil
	}
	records, err := s.changeRepo.List(ctx, secondary.FieldChangeFilters{
		Field: filters.Field,
		Limit: filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list changes: %w", err)
	}

	changes := make([]*primary.FieldChange, len(records))
	for i, r := range records {
		changes[i] = s.recordToChange(r)
	}
	return changes, nil
}

// Helper methods

func (s *HistoryServiceImpl) recordToChange(r *secondary.FieldChangeRecord) *primary.FieldChange {
	return &primary.FieldChange{
		ID:        r.ID,
		Actor:     r.Actor,
		Document:  r.Document,
		Field:     r.Field,
		OldValue:  r.OldValue,
		NewValue:  r.NewValue,
		CreatedAt: r.CreatedAt,
	}
}

var _ primary.HistoryService = (*HistoryServiceImpl)(nil)
