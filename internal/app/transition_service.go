package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/core/effects"
	"github.com/example/trinity/internal/core/frontmatter"
	"github.com/example/trinity/internal/core/sprint"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// TransitionServiceImpl implements the TransitionService interface.
type TransitionServiceImpl struct {
	indexRepo secondary.IndexDocumentRepository
	executor  EffectExecutor
	logger    *slog.Logger
}

// NewTransitionService creates a new TransitionService with injected dependencies.
func NewTransitionService(indexRepo secondary.IndexDocumentRepository, executor EffectExecutor, logger *slog.Logger) *TransitionServiceImpl {
	return &TransitionServiceImpl{
		indexRepo: indexRepo,
		executor:  executor,
		logger:    loggerOrDiscard(logger),
	}
}

// Transition writes sprint_status and the derived active_role in one rewrite.
func (s *TransitionServiceImpl) Transition(ctx context.Context, status string) (*primary.TransitionResponse, error) {
	// 1. Load the document before validating, as missing files win
	content, err := loadIndex(ctx, s.indexRepo)
	if err != nil {
		return nil, err
	}

	// 2. Guard: only enumerated statuses
	if result := sprint.CanRequestStatus(status); !result.Allowed {
		return nil, apperr.InvalidArgument("%s", result.Reason)
	}

	// 3. Guard: both fields must already exist
	prevStatus, statusErr := frontmatter.Lookup(content, frontmatter.SprintStatus)
	prevRole, roleErr := frontmatter.Lookup(content, frontmatter.ActiveRole)
	for _, err := range []error{statusErr, roleErr} {
		if err != nil && !errors.Is(err, frontmatter.ErrFieldNotFound) {
			return nil, frontmatterError(s.indexRepo.Path(), frontmatter.SprintStatus, err)
		}
	}
	guardCtx := sprint.TransitionContext{
		Requested:      status,
		HasStatusField: statusErr == nil,
		HasRoleField:   roleErr == nil,
	}
	if result := sprint.CanWriteTransition(guardCtx); !result.Allowed {
		return nil, apperr.Malformed("%s", result.Reason)
	}

	// 4. Plan and execute
	next := sprint.ApplyTransition(sprint.Status(status))
	updated, err := frontmatter.Apply(content,
		frontmatter.Edit{Field: frontmatter.SprintStatus, Value: string(next.Status)},
		frontmatter.Edit{Field: frontmatter.ActiveRole, Value: string(next.Role)},
	)
	if err != nil {
		return nil, frontmatterError(s.indexRepo.Path(), frontmatter.SprintStatus, err)
	}

	prevStatus = strings.TrimSpace(prevStatus)
	prevRole = strings.TrimSpace(prevRole)
	effs := indexWriteEffects(s.indexRepo.Path(), updated,
		effects.AuditEffect{Field: frontmatter.SprintStatus.Key, OldValue: prevStatus, NewValue: string(next.Status)},
		effects.AuditEffect{Field: frontmatter.ActiveRole.Key, OldValue: prevRole, NewValue: string(next.Role)},
	)
	if err := s.executor.Execute(ctx, effs); err != nil {
		return nil, err
	}

	return &primary.TransitionResponse{
		PreviousStatus: prevStatus,
		PreviousRole:   prevRole,
		Status:         string(next.Status),
		Role:           string(next.Role),
	}, nil
}

// ListTransitions returns the status to role table in canonical order.
func (s *TransitionServiceImpl) ListTransitions() []primary.StatusRole {
	statuses := sprint.Statuses()
	table := make([]primary.StatusRole, len(statuses))
	for i, status := range statuses {
		table[i] = primary.StatusRole{Status: string(status), Role: string(sprint.RoleFor(status))}
	}
	return table
}

var _ primary.TransitionService = (*TransitionServiceImpl)(nil)
