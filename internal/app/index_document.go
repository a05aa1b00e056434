package app

import (
	"context"
	"errors"
	"log/slog"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/core/effects"
	"github.com/example/trinity/internal/core/frontmatter"
	"github.com/example/trinity/internal/logging"
	"github.com/example/trinity/internal/ports/secondary"
)

// loadIndex reads the index document, reporting a missing file as NotFound.
func loadIndex(ctx context.Context, repo secondary.IndexDocumentRepository) ([]byte, error) {
	exists, err := repo.Exists(ctx)
	if err != nil {
		return nil, apperr.IO(err, "failed to check %s", repo.Path())
	}
	if !exists {
		return nil, apperr.NotFound("%s not found. Ensure you are in the project root.", repo.Path())
	}
	content, err := repo.Read(ctx)
	if err != nil {
		return nil, apperr.IO(err, "failed to read %s", repo.Path())
	}
	return content, nil
}

// frontmatterError converts core frontmatter errors into MalformedDocument.
func frontmatterError(path string, field frontmatter.Field, err error) error {
	switch {
	case errors.Is(err, frontmatter.ErrFieldNotFound):
		return apperr.Malformed("Could not find '%s' in %s YAML frontmatter", field.Key, path)
	case errors.Is(err, frontmatter.ErrMissingFrontMatter), errors.Is(err, frontmatter.ErrUnterminatedFrontMatter):
		return apperr.Malformed("%s has no YAML frontmatter block", path)
	default:
		return apperr.Malformed("%s: %v", path, err)
	}
}

// indexWriteEffects plans the rewrite of the index document followed by
// one record (debug log and audit entry) per changed field.
func indexWriteEffects(path string, content []byte, changes ...effects.AuditEffect) []effects.Effect {
	effs := []effects.Effect{
		effects.FileEffect{Operation: effects.FileWrite, Path: path, Content: content},
	}
	for _, change := range changes {
		change.Document = path
		effs = append(effs, effects.CompositeEffect{Effects: []effects.Effect{
			effects.LogEffect{
				Level:   "debug",
				Message: "frontmatter field updated",
				Fields:  map[string]any{"path": path, "field": change.Field, "old": change.OldValue, "new": change.NewValue},
			},
			change,
		}})
	}
	return effs
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}
