package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/core/rotation"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// EntryTimeLayout formats the timestamp prefix of an activity entry.
const EntryTimeLayout = "2006-01-02 15:04"

// maxArchiveAttempts bounds the search for a free archive name within one second.
const maxArchiveAttempts = 100

// FormatEntry renders text as a timestamped activity log line.
func FormatEntry(now time.Time, text string) string {
	return fmt.Sprintf("[%s] %s", now.Format(EntryTimeLayout), text)
}

// ActivityServiceImpl implements the ActivityService interface.
type ActivityServiceImpl struct {
	logRepo   secondary.ActivityLogRepository
	workspace secondary.WorkspaceAdapter
	executor  EffectExecutor
	policy    rotation.Policy
	logger    *slog.Logger
	now       func() time.Time
}

// NewActivityService creates a new ActivityService with injected dependencies.
func NewActivityService(
	logRepo secondary.ActivityLogRepository,
	workspace secondary.WorkspaceAdapter,
	executor EffectExecutor,
	policy rotation.Policy,
	logger *slog.Logger,
) *ActivityServiceImpl {
	return &ActivityServiceImpl{
		logRepo:   logRepo,
		workspace: workspace,
		executor:  executor,
		policy:    policy,
		logger:    loggerOrDiscard(logger),
		now:       time.Now,
	}
}

// AppendEntry appends a timestamped entry and rotates the log when it
// grows past the policy threshold.
func (s *ActivityServiceImpl) AppendEntry(ctx context.Context, text string) (*primary.AppendEntryResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperr.Usage("entry text is required")
	}
	if err := s.requireLog(ctx); err != nil {
		return nil, err
	}

	now := s.now()
	entry := FormatEntry(now, text)
	if err := s.logRepo.AppendLine(ctx, entry); err != nil {
		return nil, apperr.IO(err, "failed to append to %s", s.logRepo.Path())
	}
	s.logger.DebugContext(ctx, "activity entry appended", "path", s.logRepo.Path())

	lines, err := s.logRepo.ReadLines(ctx)
	if err != nil {
		return nil, apperr.IO(err, "failed to read %s", s.logRepo.Path())
	}

	resp := &primary.AppendEntryResponse{Entry: entry, Lines: len(lines)}
	plan := rotation.PlanRotation(lines, s.policy)
	if !plan.Rotate {
		return resp, nil
	}

	archivePath, err := s.nextArchivePath(ctx, now)
	if err != nil {
		return nil, err
	}
	if err := s.executor.Execute(ctx, rotation.Effects(plan, s.logRepo.Path(), archivePath)); err != nil {
		return nil, err
	}

	resp.Rotated = true
	resp.ArchivePath = archivePath
	resp.Archived = len(plan.Archived)
	resp.Lines = len(plan.LiveLines())
	return resp, nil
}

// TailEntries returns up to limit of the most recent lines.
// A limit of zero or less returns every line.
func (s *ActivityServiceImpl) TailEntries(ctx context.Context, limit int) ([]string, error) {
	if err := s.requireLog(ctx); err != nil {
		return nil, err
	}
	lines, err := s.logRepo.ReadLines(ctx)
	if err != nil {
		return nil, apperr.IO(err, "failed to read %s", s.logRepo.Path())
	}
	if limit > 0 && len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// FollowEntries streams newly appended lines until ctx is cancelled.
func (s *ActivityServiceImpl) FollowEntries(ctx context.Context, fn func(line string)) error {
	if err := s.requireLog(ctx); err != nil {
		return err
	}
	err := s.logRepo.Follow(ctx, func(line string) {
		fn(strings.TrimSuffix(line, "\r"))
	})
	if err != nil {
		return apperr.IO(err, "failed to follow %s", s.logRepo.Path())
	}
	return nil
}

func (s *ActivityServiceImpl) requireLog(ctx context.Context) error {
	exists, err := s.logRepo.Exists(ctx)
	if err != nil {
		return apperr.IO(err, "failed to check %s", s.logRepo.Path())
	}
	if !exists {
		return apperr.NotFound("%s not found.", s.logRepo.Path())
	}
	return nil
}

// nextArchivePath picks the first archive name for now that is not taken.
// The archive is still created exclusively, so a race loses with an error
// instead of overwriting.
func (s *ActivityServiceImpl) nextArchivePath(ctx context.Context, now time.Time) (string, error) {
	for attempt := 1; attempt <= maxArchiveAttempts; attempt++ {
		path := filepath.Join(s.logRepo.ArchiveDir(), rotation.ArchiveName(s.logRepo.Path(), now, attempt))
		exists, err := s.workspace.FileExists(ctx, path)
		if err != nil {
			return "", apperr.IO(err, "failed to check %s", path)
		}
		if !exists {
			return path, nil
		}
	}
	return "", apperr.IO(fmt.Errorf("too many archives for %s", now.Format("20060102150405")), "failed to choose archive name in %s", s.logRepo.ArchiveDir())
}

var _ primary.ActivityService = (*ActivityServiceImpl)(nil)
