// Package block contains the pure business logic for the sprint block counter.
// This is part of the Functional Core - no I/O, only pure functions.
package block

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Action is a counter editor operation.
type Action string

const (
	ActionGet       Action = "get"
	ActionIncrement Action = "increment"
	ActionReset     Action = "reset"
	ActionSet       Action = "set"
)

// Actions lists the supported actions in usage order.
func Actions() []Action {
	return []Action{ActionIncrement, ActionReset, ActionGet, ActionSet}
}

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

// ParseCount parses a `set` argument as a non-negative base-10 integer.
// The blocks field grammar is `\d+`, so a negative count could never be read back.
func ParseCount(raw string) (int, GuardResult) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, GuardResult{Allowed: false, Reason: "Block count must be an integer"}
	}
	if n < 0 {
		return 0, GuardResult{Allowed: false, Reason: fmt.Sprintf("Block count must not be negative (got %d)", n)}
	}
	return n, GuardResult{Allowed: true}
}

// ParseCurrent parses the value captured from the `blocks:` line.
func ParseCurrent(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("blocks value %q is not an integer: %w", raw, err)
	}
	return n, nil
}

// ErrCountOverflow indicates an increment past the largest representable count.
var ErrCountOverflow = errors.New("block count cannot be incremented past its maximum")

// Next returns the value the counter takes after action.
// For ActionSet the target is used; other actions ignore it.
func Next(action Action, current, target int) (int, error) {
	switch action {
	case ActionGet:
		return current, nil
	case ActionIncrement:
		if current == math.MaxInt {
			return current, fmt.Errorf("%w (%d)", ErrCountOverflow, current)
		}
		return current + 1, nil
	case ActionReset:
		return 0, nil
	case ActionSet:
		return target, nil
	default:
		return 0, fmt.Errorf("unknown action: %s", action)
	}
}

// Mutates reports whether action rewrites the document.
func (a Action) Mutates() bool {
	return a != ActionGet
}
