// Package cli provides CLI commands for the trinity tools.
package cli

import (
	gocontext "context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/config"
	"github.com/example/trinity/internal/ctxutil"
	"github.com/example/trinity/internal/logging"
	"github.com/example/trinity/internal/wire"
)

// DefaultActor is recorded when no actor is configured and none can be
// derived from the sprint status.
const DefaultActor = "HUMAN"

// globalActorID stores the configured actor for the current CLI invocation.
// Set once at startup by Bootstrap().
var globalActorID string

// AddGlobalFlags registers the persistent flags every command shares.
// Their names match the config keys so config.Load can bind them.
func AddGlobalFlags(root *cobra.Command) {
	flags := root.PersistentFlags()
	flags.String("project", "", "Project directory (default: current directory)")
	flags.String("index", "", "Sprint index document (default: "+config.DefaultIndexPath+")")
	flags.String("activity", "", "Activity log (default: "+config.DefaultActivityPath+")")
	flags.String("archive-dir", "", "Directory for rotated activity archives (default: "+config.DefaultArchiveDir+")")
	flags.String("audit-db", "", "SQLite database for the audit trail (disabled when empty)")
	flags.String("actor", "", "Actor recorded in the audit trail")
	flags.BoolP("verbose", "v", false, "Write debug logs to stderr")
}

// Bootstrap loads the configuration for this invocation and wires the
// services. Use it as the root command's PersistentPreRunE.
func Bootstrap(cmd *cobra.Command, args []string) error {
	projectDir, _ := cmd.Flags().GetString("project")
	if projectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return apperr.IO(err, "failed to get working directory")
		}
		projectDir = wd
	}
	projectDir, err := filepath.Abs(projectDir)
	if err != nil {
		return apperr.IO(err, "failed to resolve project directory")
	}

	cfg, err := config.Load(projectDir, cmd.Flags())
	if err != nil {
		return apperr.Usage("%v", err)
	}

	logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)
	logger.Debug("config loaded", "project", cfg.ProjectDir, "command", cmd.CommandPath())
	wire.Configure(cfg, logger)
	globalActorID = cfg.Actor
	return nil
}

// NewContext creates a context.Background() with the current actor embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	return ctxutil.WithActor(ctx, resolveActor(ctx))
}

// resolveActor falls back to the role the sprint status dispatches when
// the audit trail is on and no actor was configured.
func resolveActor(ctx gocontext.Context) string {
	if globalActorID != "" {
		return globalActorID
	}
	cfg := wire.Config()
	if cfg == nil || !cfg.AuditEnabled() {
		return DefaultActor
	}
	svc, err := wire.StatusService()
	if err != nil {
		return DefaultActor
	}
	state, err := svc.GetStatus(ctx)
	if err != nil || state.DerivedRole == "" || state.DerivedRole == "UNKNOWN" {
		return DefaultActor
	}
	return state.DerivedRole
}

// usageArgs rejects positional arguments outside [minArgs, maxArgs] with a
// usage error; maxArgs < 0 means unbounded.
func usageArgs(minArgs, maxArgs int, usage string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
			return apperr.Usage("%s", usage)
		}
		return nil
	}
}

func usageLine(cmd *cobra.Command) string {
	return fmt.Sprintf("Usage: %s", cmd.UseLine())
}
