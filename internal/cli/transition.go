package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

// TransitionCmd returns the transition command
func TransitionCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "transition <status>",
		Short: "Move the sprint to a new status",
		Long: `Set sprint_status in the sprint index and update active_role to the
role that status dispatches.

Examples:
  trinity transition in-review
  trinity transition --list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.TransitionAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if list {
				adapter.List()
				return nil
			}
			if err := usageArgs(1, 1, usageLine(cmd))(cmd, args); err != nil {
				return err
			}
			return adapter.Transition(NewContext(), args[0])
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "List every status and the role it dispatches")

	return cmd
}
