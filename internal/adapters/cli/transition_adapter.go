package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/trinity/internal/ports/primary"
)

// TransitionAdapter is a thin adapter that translates CLI operations to TransitionService calls.
type TransitionAdapter struct {
	service primary.TransitionService
	out     io.Writer
}

// NewTransitionAdapter creates a new TransitionAdapter with the given service.
func NewTransitionAdapter(service primary.TransitionService, out io.Writer) *TransitionAdapter {
	return &TransitionAdapter{
		service: service,
		out:     out,
	}
}

// Transition moves the sprint to status.
func (a *TransitionAdapter) Transition(ctx context.Context, status string) error {
	resp, err := a.service.Transition(ctx, status)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Transitioned to %s. Next dispatched role: %s\n", resp.Status, resp.Role)
	return nil
}

// List prints every status with the role it dispatches.
func (a *TransitionAdapter) List() {
	fmt.Fprintf(a.out, "%-17s %s\n", "STATUS", "ROLE")
	fmt.Fprintln(a.out, "──────────────────────────────")
	for _, row := range a.service.ListTransitions() {
		fmt.Fprintf(a.out, "%-17s %s\n", row.Status, row.Role)
	}
}
