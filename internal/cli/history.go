package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	var (
		field string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded frontmatter changes",
		Long: `List the audit trail of frontmatter changes, newest first.

The audit trail is recorded only when audit_db is configured.`,
		Args: usageArgs(0, 0, "Usage: trinity history [--field F] [--limit N]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.HistoryAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.List(NewContext(), field, limit)
		},
	}

	cmd.Flags().StringVar(&field, "field", "", "Only show changes to this field")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of changes to show")

	return cmd
}
