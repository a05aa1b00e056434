// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting and delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/trinity/internal/ports/primary"
)

// BlockAdapter is a thin adapter that translates CLI operations to BlockService calls.
type BlockAdapter struct {
	service primary.BlockService
	out     io.Writer
}

// NewBlockAdapter creates a new BlockAdapter with the given service.
func NewBlockAdapter(service primary.BlockService, out io.Writer) *BlockAdapter {
	return &BlockAdapter{
		service: service,
		out:     out,
	}
}

// Get prints the current block count as a bare integer.
func (a *BlockAdapter) Get(ctx context.Context) error {
	n, err := a.service.GetBlocks(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, n)
	return nil
}

// Update applies a mutating action and reports the new count.
func (a *BlockAdapter) Update(ctx context.Context, action, value string) error {
	resp, err := a.service.UpdateBlocks(ctx, primary.UpdateBlocksRequest{
		Action: action,
		Value:  value,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Block count updated to %d\n", resp.Current)
	return nil
}
