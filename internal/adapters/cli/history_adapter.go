package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/example/trinity/internal/ports/primary"
)

// HistoryAdapter is a thin adapter that translates CLI operations to HistoryService calls.
type HistoryAdapter struct {
	service primary.HistoryService
	out     io.Writer
}

// NewHistoryAdapter creates a new HistoryAdapter with the given service.
func NewHistoryAdapter(service primary.HistoryService, out io.Writer) *HistoryAdapter {
	return &HistoryAdapter{
		service: service,
		out:     out,
	}
}

// List prints audited changes newest first.
func (a *HistoryAdapter) List(ctx context.Context, field string, limit int) error {
	if !a.service.Enabled() {
		fmt.Fprintln(a.out, "Audit trail is disabled. Set audit_db in .trinity/config.yaml or pass --audit-db.")
		return nil
	}

	changes, err := a.service.ListChanges(ctx, primary.HistoryFilters{Field: field, Limit: limit})
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		fmt.Fprintln(a.out, "No changes recorded")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-20s %-13s %-12s %-14s %s\n", "TIME", "ACTOR", "DOCUMENT", "FIELD", "CHANGE")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────────")
	for _, c := range changes {
		fmt.Fprintf(a.out, "%-20s %-13s %-12s %-14s %s → %s\n",
			c.CreatedAt, orDash(c.Actor), filepath.Base(c.Document), c.Field, orDash(c.OldValue), orDash(c.NewValue))
	}
	fmt.Fprintln(a.out)
	return nil
}
