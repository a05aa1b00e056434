package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

// StatusCmd returns the status command
func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the sprint state recorded in the index frontmatter",
		Args:  usageArgs(0, 0, "Usage: trinity status"),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.StatusAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Show(NewContext())
		},
	}
}
