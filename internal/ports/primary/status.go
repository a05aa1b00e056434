package primary

import "context"

// StatusService defines the primary port for read-only sprint state.
type StatusService interface {
	// GetStatus reads the index document frontmatter without writing it.
	GetStatus(ctx context.Context) (*SprintState, error)
}

// SprintState is the frontmatter state at the port boundary.
type SprintState struct {
	DocumentPath string
	Blocks       *int
	SprintStatus string
	ActiveRole   string
	DerivedRole  string // Role implied by SprintStatus
	TestsPassing *bool
	Fields       map[string]any
}

// RoleMismatch reports whether the recorded role disagrees with the derived one.
func (s *SprintState) RoleMismatch() bool {
	return s.SprintStatus != "" && s.ActiveRole != s.DerivedRole
}
