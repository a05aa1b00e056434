package app

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/config"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
	"github.com/example/trinity/internal/templates"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	cfg       *config.Config
	workspace secondary.WorkspaceAdapter
	logger    *slog.Logger
	now       func() time.Time
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(cfg *config.Config, workspace secondary.WorkspaceAdapter, logger *slog.Logger) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		cfg:       cfg,
		workspace: workspace,
		logger:    loggerOrDiscard(logger),
		now:       time.Now,
	}
}

// InitProject writes the starter index document, activity log and,
// optionally, the config file. Existing files are never overwritten.
func (s *ProjectServiceImpl) InitProject(ctx context.Context, req primary.InitProjectRequest) (*primary.InitProjectResponse, error) {
	data := templates.ProjectData{
		Date:        s.now().Format("2006-01-02"),
		ArchiveDir:  s.cfg.ArchiveDir,
		Threshold:   s.cfg.Rotation.Threshold,
		HeaderLines: s.cfg.Rotation.HeaderLines,
		TailLines:   s.cfg.Rotation.TailLines,
	}
	if rel, err := filepath.Rel(s.cfg.ProjectDir, s.cfg.ArchiveDir); err == nil {
		data.ArchiveDir = filepath.ToSlash(rel)
	}

	type starter struct {
		path   string
		render func() ([]byte, error)
	}
	starters := []starter{
		{s.cfg.IndexPath, func() ([]byte, error) { return templates.RenderIndex(data) }},
		{s.cfg.ActivityPath, func() ([]byte, error) { return templates.RenderActivity(data) }},
	}
	if req.WithConfig {
		configPath := s.workspace.ResolvePath(filepath.Join(config.DirName, config.FileName))
		starters = append(starters, starter{configPath, func() ([]byte, error) { return config.Render(s.cfg) }})
	}

	resp := &primary.InitProjectResponse{}
	for _, st := range starters {
		created, err := s.createIfMissing(ctx, st.path, st.render)
		if err != nil {
			return nil, err
		}
		if created {
			resp.Created = append(resp.Created, st.path)
		} else {
			resp.Skipped = append(resp.Skipped, st.path)
		}
	}
	return resp, nil
}

func (s *ProjectServiceImpl) createIfMissing(ctx context.Context, path string, render func() ([]byte, error)) (bool, error) {
	exists, err := s.workspace.FileExists(ctx, path)
	if err != nil {
		return false, apperr.IO(err, "failed to check %s", path)
	}
	if exists {
		return false, nil
	}

	content, err := render()
	if err != nil {
		return false, apperr.IO(err, "failed to render %s", filepath.Base(path))
	}
	dir := filepath.Dir(path)
	dirExists, err := s.workspace.DirectoryExists(ctx, dir)
	if err != nil {
		return false, apperr.IO(err, "failed to check %s", dir)
	}
	if !dirExists {
		if err := s.workspace.CreateDirectory(ctx, dir, 0o755); err != nil {
			return false, apperr.IO(err, "failed to create %s", dir)
		}
		s.logger.DebugContext(ctx, "directory created", "path", dir)
	}
	if err := s.workspace.CreateFile(ctx, path, content, 0o644); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, apperr.IO(err, "failed to create %s", path)
	}
	s.logger.DebugContext(ctx, "starter file created", "path", path)
	return true, nil
}

var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
