package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/example/trinity/internal/ports/primary"
)

// ActivityAdapter is a thin adapter that translates CLI operations to ActivityService calls.
type ActivityAdapter struct {
	service primary.ActivityService
	out     io.Writer
}

// NewActivityAdapter creates a new ActivityAdapter with the given service.
func NewActivityAdapter(service primary.ActivityService, out io.Writer) *ActivityAdapter {
	return &ActivityAdapter{
		service: service,
		out:     out,
	}
}

// Append logs an entry and reports a rotation when one happened.
func (a *ActivityAdapter) Append(ctx context.Context, text string) error {
	resp, err := a.service.AppendEntry(ctx, text)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged: %s\n", resp.Entry)
	if resp.Rotated {
		fmt.Fprintf(a.out, "Log rotated. Older entries moved to %s\n", resp.ArchivePath)
	}
	return nil
}

// Tail prints the last n lines, then keeps printing new ones when follow is set.
func (a *ActivityAdapter) Tail(ctx context.Context, n int, follow bool) error {
	lines, err := a.service.TailEntries(ctx, n)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Fprintln(a.out, line)
	}
	if !follow {
		return nil
	}
	return a.service.FollowEntries(ctx, func(line string) {
		fmt.Fprintln(a.out, line)
	})
}
