// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/core/effects"
	"github.com/example/trinity/internal/logging"
	"github.com/example/trinity/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place planned I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// DefaultEffectExecutor implements EffectExecutor with real I/O.
type DefaultEffectExecutor struct {
	workspace secondary.WorkspaceAdapter
	audit     secondary.AuditWriter
	logger    *slog.Logger
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
// audit may be nil, in which case audit effects are dropped.
func NewEffectExecutor(workspace secondary.WorkspaceAdapter, audit secondary.AuditWriter, logger *slog.Logger) *DefaultEffectExecutor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &DefaultEffectExecutor{
		workspace: workspace,
		audit:     audit,
		logger:    logger,
	}
}

// Execute processes a slice of effects, executing each in sequence.
// Execution stops at the first failure; earlier effects are not undone.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return err
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.FileEffect:
		return e.executeFile(ctx, typed)
	case effects.AuditEffect:
		return e.executeAudit(ctx, typed)
	case effects.CompositeEffect:
		return e.Execute(ctx, typed.Effects)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(ctx, typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

func (e *DefaultEffectExecutor) executeFile(ctx context.Context, eff effects.FileEffect) error {
	var err error
	switch eff.Operation {
	case effects.FileMkdir:
		err = e.workspace.CreateDirectory(ctx, eff.Path, eff.Mode)
	case effects.FileWrite:
		err = e.workspace.WriteFile(ctx, eff.Path, eff.Content, eff.Mode)
	case effects.FileCreate:
		err = e.workspace.CreateFile(ctx, eff.Path, eff.Content, eff.Mode)
	default:
		return fmt.Errorf("unknown file operation: %s", eff.Operation)
	}
	if err != nil {
		return apperr.IO(err, "failed to %s %s", eff.Operation, eff.Path)
	}
	e.logger.DebugContext(ctx, "file effect applied", "op", eff.Operation, "path", eff.Path, "bytes", len(eff.Content))
	return nil
}

func (e *DefaultEffectExecutor) executeAudit(ctx context.Context, eff effects.AuditEffect) error {
	if e.audit == nil {
		return nil
	}
	if err := e.audit.LogUpdate(ctx, eff.Document, eff.Field, eff.OldValue, eff.NewValue); err != nil {
		return apperr.IO(err, "failed to record %s change in audit trail", eff.Field)
	}
	return nil
}

func (e *DefaultEffectExecutor) executeLog(ctx context.Context, eff effects.LogEffect) {
	attrs := make([]any, 0, len(eff.Fields)*2)
	for k, v := range eff.Fields {
		attrs = append(attrs, k, v)
	}
	e.logger.Log(ctx, logLevel(eff.Level), eff.Message, attrs...)
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
