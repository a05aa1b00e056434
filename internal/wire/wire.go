// Package wire provides dependency injection for the trinity commands.
// It creates singleton services with lazy initialization from the
// configuration loaded for the current invocation.
package wire

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"sync"

	cliadapter "github.com/example/trinity/internal/adapters/cli"
	"github.com/example/trinity/internal/adapters/filesystem"
	"github.com/example/trinity/internal/adapters/shell"
	"github.com/example/trinity/internal/adapters/sqlite"
	"github.com/example/trinity/internal/app"
	"github.com/example/trinity/internal/config"
	"github.com/example/trinity/internal/db"
	"github.com/example/trinity/internal/logging"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

var (
	mu     sync.Mutex
	cfg    *config.Config
	logger *slog.Logger

	once    sync.Once
	initErr error

	auditDB           *sql.DB
	blockService      primary.BlockService
	activityService   primary.ActivityService
	testGateService   primary.TestGateService
	transitionService primary.TransitionService
	statusService     primary.StatusService
	historyService    primary.HistoryService
	projectService    primary.ProjectService
)

// Configure installs the configuration for this invocation and drops any
// services built from a previous one.
func Configure(c *config.Config, l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()

	closeAuditDB()
	if l == nil {
		l = logging.Discard()
	}
	cfg = c
	logger = l
	once = sync.Once{}
	initErr = nil
}

// Config returns the configuration installed by Configure.
func Config() *config.Config {
	mu.Lock()
	defer mu.Unlock()
	return cfg
}

// Close releases the audit database, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeAuditDB()
}

func closeAuditDB() error {
	if auditDB == nil {
		return nil
	}
	err := auditDB.Close()
	auditDB = nil
	return err
}

func ensure() error {
	mu.Lock()
	defer mu.Unlock()
	if cfg == nil {
		return fmt.Errorf("wire: Configure must be called before use")
	}
	once.Do(initServices)
	return initErr
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once, with mu held.
func initServices() {
	// Workspace and file repositories (secondary ports)
	workspace, err := filesystem.NewWorkspaceAdapter(cfg.ProjectDir)
	if err != nil {
		initErr = err
		return
	}
	indexRepo := filesystem.NewIndexDocumentRepository(cfg.IndexPath)
	activityRepo := filesystem.NewActivityLogRepository(cfg.ActivityPath, cfg.ArchiveDir)
	runner := shell.NewRunner(workspace.GetProjectDir())

	// Optional audit trail
	var (
		changeRepo secondary.FieldChangeRepository
		audit      secondary.AuditWriter
	)
	if cfg.AuditEnabled() {
		database, err := db.Open(cfg.AuditDBPath)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize audit database: %w", err)
			return
		}
		auditDB = database
		repo := sqlite.NewFieldChangeRepository(database)
		changeRepo = repo
		audit = sqlite.NewLogWriterAdapter(repo)
	}

	// Effect executor with injected adapters
	executor := app.NewEffectExecutor(workspace, audit, logger)

	// Services (primary ports implementation)
	blockService = app.NewBlockService(indexRepo, executor, logger)
	activityService = app.NewActivityService(activityRepo, workspace, executor, cfg.RotationPolicy(), logger)
	testGateService = app.NewTestGateService(indexRepo, activityRepo, runner, executor, logger)
	transitionService = app.NewTransitionService(indexRepo, executor, logger)
	statusService = app.NewStatusService(indexRepo)
	historyService = app.NewHistoryService(changeRepo)
	projectService = app.NewProjectService(cfg, workspace, logger)

	logger.Debug("services initialized",
		"index", cfg.IndexPath,
		"activity", cfg.ActivityPath,
		"archive_dir", cfg.ArchiveDir,
		"audit", cfg.AuditEnabled())
}

// StatusService returns the singleton StatusService instance.
func StatusService() (primary.StatusService, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return statusService, nil
}

// BlockAdapterWithOutput returns a new BlockAdapter writing to the given output.
// Each call creates a new adapter (adapters are stateless translators).
func BlockAdapterWithOutput(out io.Writer) (*cliadapter.BlockAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewBlockAdapter(blockService, out), nil
}

// ActivityAdapterWithOutput returns a new ActivityAdapter writing to the given output.
func ActivityAdapterWithOutput(out io.Writer) (*cliadapter.ActivityAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewActivityAdapter(activityService, out), nil
}

// GateAdapterWithOutput returns a new GateAdapter writing to out and errOut.
func GateAdapterWithOutput(out, errOut io.Writer) (*cliadapter.GateAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewGateAdapter(testGateService, cfg.IndexPath, out, errOut), nil
}

// TransitionAdapterWithOutput returns a new TransitionAdapter writing to the given output.
func TransitionAdapterWithOutput(out io.Writer) (*cliadapter.TransitionAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewTransitionAdapter(transitionService, out), nil
}

// StatusAdapterWithOutput returns a new StatusAdapter writing to the given output.
func StatusAdapterWithOutput(out io.Writer) (*cliadapter.StatusAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewStatusAdapter(statusService, out), nil
}

// HistoryAdapterWithOutput returns a new HistoryAdapter writing to the given output.
func HistoryAdapterWithOutput(out io.Writer) (*cliadapter.HistoryAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewHistoryAdapter(historyService, out), nil
}

// ProjectAdapterWithOutput returns a new ProjectAdapter writing to the given output.
func ProjectAdapterWithOutput(out io.Writer) (*cliadapter.ProjectAdapter, error) {
	if err := ensure(); err != nil {
		return nil, err
	}
	return cliadapter.NewProjectAdapter(projectService, out), nil
}
