package primary

import "context"

// ProjectService defines the primary port for project scaffolding.
type ProjectService interface {
	// InitProject writes the starter files that do not already exist.
	InitProject(ctx context.Context, req InitProjectRequest) (*InitProjectResponse, error)
}

// InitProjectRequest contains parameters for project scaffolding.
type InitProjectRequest struct {
	WithConfig bool // Also write .trinity/config.yaml
}

// InitProjectResponse lists what was written and what was left alone.
type InitProjectResponse struct {
	Created []string
	Skipped []string
}
