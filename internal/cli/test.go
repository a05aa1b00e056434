package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

const testUsage = `Usage: trinity test "<test-command>"`

// TestCmd returns the test command
func TestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test <test-command>",
		Short: "Run the test suite and record the result in the sprint index",
		Long: `Run a test command through the shell and record its outcome.

tests_passing in the sprint index is set from the exit code and a line is
appended to the activity log when it exists. trinity exits with the test
command's exit code.

Examples:
  trinity test "go test ./..."
  trinity test "make check"`,
		Args: usageArgs(1, 1, testUsage),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.GateAdapterWithOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return adapter.Run(NewContext(), args[0])
		},
	}

	// Flags after the command belong to it, not to trinity.
	cmd.Flags().SetInterspersed(false)

	return cmd
}
