// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the outside world drives the application.
package primary

import "context"

// BlockService defines the primary port for the sprint block counter.
type BlockService interface {
	// GetBlocks returns the current `blocks` value without mutating the document.
	GetBlocks(ctx context.Context) (int, error)

	// UpdateBlocks applies increment, reset or set to the counter.
	UpdateBlocks(ctx context.Context, req UpdateBlocksRequest) (*UpdateBlocksResponse, error)
}

// UpdateBlocksRequest contains parameters for a counter mutation.
type UpdateBlocksRequest struct {
	Action string // "increment", "reset" or "set"
	Value  string // Raw argument for "set"
}

// UpdateBlocksResponse contains the result of a counter mutation.
type UpdateBlocksResponse struct {
	Previous int
	Current  int
}
