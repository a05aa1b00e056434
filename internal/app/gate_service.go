package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/core/effects"
	"github.com/example/trinity/internal/core/frontmatter"
	"github.com/example/trinity/internal/core/sprint"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// TestGateServiceImpl implements the TestGateService interface.
type TestGateServiceImpl struct {
	indexRepo secondary.IndexDocumentRepository
	logRepo   secondary.ActivityLogRepository
	runner    secondary.CommandRunner
	executor  EffectExecutor
	logger    *slog.Logger
	now       func() time.Time
}

// NewTestGateService creates a new TestGateService with injected dependencies.
func NewTestGateService(
	indexRepo secondary.IndexDocumentRepository,
	logRepo secondary.ActivityLogRepository,
	runner secondary.CommandRunner,
	executor EffectExecutor,
	logger *slog.Logger,
) *TestGateServiceImpl {
	return &TestGateServiceImpl{
		indexRepo: indexRepo,
		logRepo:   logRepo,
		runner:    runner,
		executor:  executor,
		logger:    loggerOrDiscard(logger),
		now:       time.Now,
	}
}

// GateEntry renders the activity log text for a test gate verdict.
func GateEntry(command string, passed bool) string {
	outcome := "Failed"
	if passed {
		outcome = "Passed"
	}
	return fmt.Sprintf("<role>%s</role> — <action>Automated Tests</action> — Tests %s: %s", sprint.RoleBuilder, outcome, command)
}

// RunTests runs the command, then records tests_passing and the log entry.
func (s *TestGateServiceImpl) RunTests(ctx context.Context, req primary.RunTestsRequest) (*primary.RunTestsResponse, error) {
	// 1. Preconditions, all checked before the command runs
	if strings.TrimSpace(req.Command) == "" {
		return nil, apperr.Usage("Usage: trinity test \"<test-command>\"")
	}
	content, err := loadIndex(ctx, s.indexRepo)
	if err != nil {
		return nil, err
	}
	if _, err := frontmatter.Lookup(content, frontmatter.TestsPassing); err != nil && !errors.Is(err, frontmatter.ErrFieldNotFound) {
		return nil, frontmatterError(s.indexRepo.Path(), frontmatter.TestsPassing, err)
	}

	// 2. Run the command
	if req.OnStart != nil {
		req.OnStart(req.Command)
	}
	s.logger.DebugContext(ctx, "running test command", "command", req.Command)
	result, err := s.runner.Run(ctx, req.Command)
	if err != nil {
		return nil, apperr.IO(err, "failed to run test command")
	}
	passed := result.ExitCode == 0
	resp := &primary.RunTestsResponse{
		Command:  req.Command,
		Passed:   passed,
		ExitCode: result.ExitCode,
		Stdout:   result.Stdout,
		Stderr:   result.Stderr,
	}

	// 3. Record the verdict; the document is re-read because the run may be long
	content, err = loadIndex(ctx, s.indexRepo)
	if err != nil {
		return nil, err
	}
	previous, lookupErr := frontmatter.Lookup(content, frontmatter.TestsPassing)
	resp.FieldInserted = errors.Is(lookupErr, frontmatter.ErrFieldNotFound)

	value := strconv.FormatBool(passed)
	updated, err := frontmatter.Apply(content, frontmatter.Edit{Field: frontmatter.TestsPassing, Value: value, InsertIfMissing: true})
	if err != nil {
		return nil, frontmatterError(s.indexRepo.Path(), frontmatter.TestsPassing, err)
	}
	effs := indexWriteEffects(s.indexRepo.Path(), updated, effects.AuditEffect{
		Field:    frontmatter.TestsPassing.Key,
		OldValue: strings.TrimSpace(previous),
		NewValue: value,
	})
	if err := s.executor.Execute(ctx, effs); err != nil {
		return nil, err
	}

	// 4. Log the verdict when an activity log exists; no rotation here
	exists, err := s.logRepo.Exists(ctx)
	if err != nil {
		return nil, apperr.IO(err, "failed to check %s", s.logRepo.Path())
	}
	if exists {
		if err := s.logRepo.AppendLine(ctx, FormatEntry(s.now(), GateEntry(req.Command, passed))); err != nil {
			return nil, apperr.IO(err, "failed to append to %s", s.logRepo.Path())
		}
		resp.Logged = true
	}

	return resp, nil
}

var _ primary.TestGateService = (*TestGateServiceImpl)(nil)
