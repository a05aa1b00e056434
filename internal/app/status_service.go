package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/trinity/internal/core/frontmatter"
	"github.com/example/trinity/internal/core/sprint"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// StatusServiceImpl implements the StatusService interface. It never writes.
type StatusServiceImpl struct {
	indexRepo secondary.IndexDocumentRepository
}

// NewStatusService creates a new StatusService with injected dependencies.
func NewStatusService(indexRepo secondary.IndexDocumentRepository) *StatusServiceImpl {
	return &StatusServiceImpl{indexRepo: indexRepo}
}

// GetStatus parses the frontmatter and summarizes the sprint state.
func (s *StatusServiceImpl) GetStatus(ctx context.Context) (*primary.SprintState, error) {
	content, err := loadIndex(ctx, s.indexRepo)
	if err != nil {
		return nil, err
	}
	fields, err := frontmatter.Parse(content)
	if err != nil {
		return nil, frontmatterError(s.indexRepo.Path(), frontmatter.SprintStatus, err)
	}

	state := &primary.SprintState{
		DocumentPath: s.indexRepo.Path(),
		SprintStatus: scalar(fields[frontmatter.SprintStatus.Key]),
		ActiveRole:   scalar(fields[frontmatter.ActiveRole.Key]),
		Fields:       fields,
	}
	if state.SprintStatus != "" {
		state.DerivedRole = string(sprint.RoleFor(sprint.Status(state.SprintStatus)))
	}
	if n, err := strconv.Atoi(scalar(fields[frontmatter.Blocks.Key])); err == nil {
		state.Blocks = &n
	}
	if b, err := strconv.ParseBool(scalar(fields[frontmatter.TestsPassing.Key])); err == nil {
		state.TestsPassing = &b
	}
	return state, nil
}

// scalar renders a decoded YAML value the way it appears on its line.
func scalar(v any) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(v))
}

var _ primary.StatusService = (*StatusServiceImpl)(nil)
