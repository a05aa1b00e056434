package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trinity/internal/config"
	"github.com/example/trinity/internal/ports/primary"
)

func TestProjectService_InitProject(t *testing.T) {
	ws := newMemWorkspace()
	cfg := config.Default("/project")
	service := NewProjectService(cfg, ws, nil)
	service.now = fixedClock()

	resp, err := service.InitProject(context.Background(), primary.InitProjectRequest{WithConfig: true})

	require.NoError(t, err)
	assert.Equal(t, []string{cfg.IndexPath, cfg.ActivityPath, config.Path("/project")}, resp.Created)
	assert.Empty(t, resp.Skipped)

	index := string(ws.files[cfg.IndexPath])
	assert.True(t, strings.HasPrefix(index, "---\nblocks: 0\n"))
	assert.Contains(t, index, "Created 2026-03-14.")
	assert.Contains(t, string(ws.files[cfg.ActivityPath]), "docs/archive")
	assert.Contains(t, string(ws.files[config.Path("/project")]), "threshold: 500")
	assert.True(t, ws.dirs["/project/docs/sprints"])
}

func TestProjectService_NeverOverwrites(t *testing.T) {
	ws := newMemWorkspace()
	cfg := config.Default("/project")
	ws.files[cfg.IndexPath] = []byte("existing")
	service := NewProjectService(cfg, ws, nil)

	resp, err := service.InitProject(context.Background(), primary.InitProjectRequest{})

	require.NoError(t, err)
	assert.Equal(t, []string{cfg.ActivityPath}, resp.Created)
	assert.Equal(t, []string{cfg.IndexPath}, resp.Skipped)
	assert.Equal(t, "existing", string(ws.files[cfg.IndexPath]))
	_, hasConfig := ws.files[config.Path("/project")]
	assert.False(t, hasConfig, "config is only written on request")
}

func TestProjectService_CreatesOnlyMissingDirectories(t *testing.T) {
	ws := newMemWorkspace()
	cfg := config.Default("/project")
	ws.dirs["/project"] = true
	service := NewProjectService(cfg, ws, nil)

	_, err := service.InitProject(context.Background(), primary.InitProjectRequest{WithConfig: true})

	require.NoError(t, err)
	// ACTIVITY.md lives in the existing project root
	assert.Equal(t, []string{"/project/docs/sprints", "/project/.trinity"}, ws.mkdirs)
}

func TestProjectService_ConfigPathResolvedAgainstWorkspace(t *testing.T) {
	ws := newMemWorkspace()
	cfg := config.Default("/project")
	service := NewProjectService(cfg, ws, nil)

	resp, err := service.InitProject(context.Background(), primary.InitProjectRequest{WithConfig: true})

	require.NoError(t, err)
	assert.Contains(t, resp.Created, ws.ResolvePath(".trinity/config.yaml"))
}
