package sprint

import (
	"fmt"
	"strings"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// TransitionContext provides the pre-fetched state a transition guard needs.
type TransitionContext struct {
	Requested      string
	HasStatusField bool
	HasRoleField   bool
}

// ValidStatusList renders the statuses for error and usage messages.
func ValidStatusList() string {
	names := make([]string, 0, len(Statuses()))
	for _, s := range Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, ", ")
}

// CanRequestStatus evaluates whether the requested string names a status.
// Rule: Only the nine enumerated statuses are accepted, matched exactly.
func CanRequestStatus(requested string) GuardResult {
	if !Status(requested).IsValid() {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("'%s' is not a valid sprint status. Valid statuses: %s", requested, ValidStatusList()),
		}
	}
	return GuardResult{Allowed: true}
}

// CanWriteTransition evaluates whether the document can take the transition.
// Rule: Both sprint_status and active_role must already exist; neither is synthesized.
func CanWriteTransition(ctx TransitionContext) GuardResult {
	var missing []string
	if !ctx.HasStatusField {
		missing = append(missing, "sprint_status")
	}
	if !ctx.HasRoleField {
		missing = append(missing, "active_role")
	}
	if len(missing) > 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Cannot transition to %s: frontmatter is missing %s", ctx.Requested, strings.Join(missing, " and ")),
		}
	}
	return GuardResult{Allowed: true}
}
