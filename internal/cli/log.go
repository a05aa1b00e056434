package cli

import (
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <entry>",
		Short: "Append a timestamped entry to the activity log",
		Long: `Append "[YYYY-MM-DD HH:MM] <entry>" to the activity log.

When the log grows past the rotation threshold, everything between the
header and the most recent lines is moved to a timestamped archive.

Entries that start with "-" must follow "--", otherwise they are read
as flags.

Examples:
  trinity log "Started sprint 4"
  trinity log -- "- fixed the parser"
  trinity log tail -n 50`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ActivityAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Append(NewContext(), strings.Join(args, " "))
		},
	}

	cmd.AddCommand(logTailCmd())

	return cmd
}

func logTailCmd() *cobra.Command {
	var (
		limit  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Show recent activity",
		Long:  "Show the last lines of the activity log, optionally following new entries until interrupted",
		Args:  usageArgs(0, 0, "Usage: trinity log tail [-n N] [--follow]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ActivityAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(NewContext(), os.Interrupt)
			defer stop()
			return adapter.Tail(ctx, limit, follow)
		},
	}

	cmd.Flags().IntVarP(&limit, "lines", "n", 20, "Number of lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are appended")

	return cmd
}
