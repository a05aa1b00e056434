// Package sprint contains the pure business logic for sprint status transitions.
// This is part of the Functional Core - no I/O, only pure functions.
package sprint

// Status is a sprint workflow status recorded as `sprint_status`.
type Status string

const (
	StatusInReview       Status = "in-review"
	StatusApproved       Status = "approved"
	StatusBlocked        Status = "blocked"
	StatusInProgress     Status = "in-progress"
	StatusBuilderBlocked Status = "builder-blocked"
	StatusComplete       Status = "complete"
	StatusDiffBlocked    Status = "diff-blocked"
	StatusMerged         Status = "merged"
	StatusHumanReview    Status = "human-review"
)

// Role is the actor dispatched next, recorded as `active_role`.
type Role string

const (
	RoleArchitect    Role = "ARCHITECT"
	RoleBuilder      Role = "BUILDER"
	RoleOrchestrator Role = "ORCHESTRATOR"
	RoleHuman        Role = "HUMAN"
	RoleUnknown      Role = "UNKNOWN"
)

// Statuses returns every valid status in canonical order.
func Statuses() []Status {
	return []Status{
		StatusInReview,
		StatusApproved,
		StatusBlocked,
		StatusInProgress,
		StatusBuilderBlocked,
		StatusComplete,
		StatusDiffBlocked,
		StatusMerged,
		StatusHumanReview,
	}
}

// IsValid reports whether s is one of the enumerated statuses.
func (s Status) IsValid() bool {
	for _, valid := range Statuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// RoleFor derives the role implied by status.
// RoleUnknown is returned for statuses outside the enumeration; callers
// validate first, so it is only reachable through a programming error.
func RoleFor(status Status) Role {
	switch status {
	case StatusInReview, StatusComplete:
		return RoleArchitect
	case StatusApproved, StatusInProgress, StatusDiffBlocked:
		return RoleBuilder
	case StatusBlocked, StatusBuilderBlocked, StatusMerged:
		return RoleOrchestrator
	case StatusHumanReview:
		return RoleHuman
	default:
		return RoleUnknown
	}
}

// TransitionResult captures the field values written by a transition.
type TransitionResult struct {
	Status Status
	Role   Role
}

// ApplyTransition returns the values both frontmatter fields take for status.
func ApplyTransition(status Status) TransitionResult {
	return TransitionResult{
		Status: status,
		Role:   RoleFor(status),
	}
}
