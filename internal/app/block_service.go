package app

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/example/trinity/internal/apperr"
	coreblock "github.com/example/trinity/internal/core/block"
	"github.com/example/trinity/internal/core/effects"
	"github.com/example/trinity/internal/core/frontmatter"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

// BlockServiceImpl implements the BlockService interface.
type BlockServiceImpl struct {
	indexRepo secondary.IndexDocumentRepository
	executor  EffectExecutor
	logger    *slog.Logger
}

// NewBlockService creates a new BlockService with injected dependencies.
func NewBlockService(indexRepo secondary.IndexDocumentRepository, executor EffectExecutor, logger *slog.Logger) *BlockServiceImpl {
	return &BlockServiceImpl{
		indexRepo: indexRepo,
		executor:  executor,
		logger:    loggerOrDiscard(logger),
	}
}

// GetBlocks returns the current block count.
func (s *BlockServiceImpl) GetBlocks(ctx context.Context) (int, error) {
	_, current, err := s.readCurrent(ctx)
	return current, err
}

// UpdateBlocks applies a counter action and rewrites the `blocks` line.
func (s *BlockServiceImpl) UpdateBlocks(ctx context.Context, req primary.UpdateBlocksRequest) (*primary.UpdateBlocksResponse, error) {
	// 1. Read the current value; the field is never synthesized
	content, current, err := s.readCurrent(ctx)
	if err != nil {
		return nil, err
	}

	// 2. Validate the action and its argument
	action := coreblock.Action(req.Action)
	target := 0
	switch action {
	case coreblock.ActionSet:
		if req.Value == "" {
			return nil, apperr.Usage("Must provide a number for 'set'")
		}
		n, result := coreblock.ParseCount(req.Value)
		if !result.Allowed {
			return nil, apperr.InvalidArgument("%s", result.Reason)
		}
		target = n
	case coreblock.ActionGet, coreblock.ActionIncrement, coreblock.ActionReset:
	default:
		return nil, apperr.Usage("Unknown action: %s", req.Action)
	}

	next, err := coreblock.Next(action, current, target)
	if errors.Is(err, coreblock.ErrCountOverflow) {
		return nil, apperr.InvalidArgument("%v", err)
	}
	if err != nil {
		return nil, apperr.Usage("%v", err)
	}
	resp := &primary.UpdateBlocksResponse{Previous: current, Current: next}
	if !action.Mutates() {
		return resp, nil
	}

	// 3. Plan and execute the rewrite
	updated, err := frontmatter.Apply(content, frontmatter.Edit{Field: frontmatter.Blocks, Value: strconv.Itoa(next)})
	if err != nil {
		return nil, frontmatterError(s.indexRepo.Path(), frontmatter.Blocks, err)
	}
	effs := indexWriteEffects(s.indexRepo.Path(), updated, effects.AuditEffect{
		Field:    frontmatter.Blocks.Key,
		OldValue: strconv.Itoa(current),
		NewValue: strconv.Itoa(next),
	})
	if err := s.executor.Execute(ctx, effs); err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *BlockServiceImpl) readCurrent(ctx context.Context) ([]byte, int, error) {
	content, err := loadIndex(ctx, s.indexRepo)
	if err != nil {
		return nil, 0, err
	}
	raw, err := frontmatter.Lookup(content, frontmatter.Blocks)
	if err != nil {
		return nil, 0, apperr.Malformed("Could not find 'blocks: N' in %s YAML frontmatter", s.indexRepo.Path())
	}
	current, err := coreblock.ParseCurrent(raw)
	if err != nil {
		return nil, 0, apperr.Malformed("%s: %v", s.indexRepo.Path(), err)
	}
	s.logger.DebugContext(ctx, "block count read", "path", s.indexRepo.Path(), "blocks", current)
	return content, current, nil
}

var _ primary.BlockService = (*BlockServiceImpl)(nil)
