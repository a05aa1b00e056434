package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/example/trinity/internal/ports/primary"
)

// StatusAdapter is a thin adapter that translates CLI operations to StatusService calls.
type StatusAdapter struct {
	service primary.StatusService
	out     io.Writer
}

// NewStatusAdapter creates a new StatusAdapter with the given service.
func NewStatusAdapter(service primary.StatusService, out io.Writer) *StatusAdapter {
	return &StatusAdapter{
		service: service,
		out:     out,
	}
}

// Show prints the sprint state summary.
func (a *StatusAdapter) Show(ctx context.Context) error {
	state, err := a.service.GetStatus(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Index:         %s\n", state.DocumentPath)
	fmt.Fprintf(a.out, "Sprint status: %s\n", orDash(state.SprintStatus))
	fmt.Fprintf(a.out, "Active role:   %s\n", orDash(state.ActiveRole))

	blocks := "-"
	if state.Blocks != nil {
		blocks = strconv.Itoa(*state.Blocks)
	}
	fmt.Fprintf(a.out, "Blocks:        %s\n", blocks)

	tests := "-"
	if state.TestsPassing != nil {
		if *state.TestsPassing {
			tests = color.New(color.FgGreen).Sprint("passing")
		} else {
			tests = color.New(color.FgRed).Sprint("failing")
		}
	}
	fmt.Fprintf(a.out, "Tests:         %s\n", tests)

	if state.RoleMismatch() {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprintf(
			"! active_role is %s but %s dispatches %s", orDash(state.ActiveRole), state.SprintStatus, state.DerivedRole))
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
