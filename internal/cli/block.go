package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/wire"
)

const blockUsage = "Usage: trinity block {increment|reset|get|set <n>}"

// BlockCmd returns the block command
func BlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Read or update the blocks counter in the sprint index",
		Long: `Read or update the "blocks" field in the sprint index frontmatter.

Examples:
  trinity block get
  trinity block increment
  trinity block set 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return apperr.Usage("Unknown action: %s\n%s", args[0], blockUsage)
			}
			return apperr.Usage("%s", blockUsage)
		},
	}

	cmd.AddCommand(blockGetCmd())
	cmd.AddCommand(blockUpdateCmd("increment", "Add one to the block count"))
	cmd.AddCommand(blockUpdateCmd("reset", "Set the block count to zero"))
	cmd.AddCommand(blockSetCmd())

	return cmd
}

func blockGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Print the current block count",
		Args:  usageArgs(0, 0, blockUsage),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BlockAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Get(NewContext())
		},
	}
}

func blockUpdateCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action,
		Short: short,
		Args:  usageArgs(0, 0, blockUsage),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BlockAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Update(NewContext(), action, "")
		},
	}
}

func blockSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <n>",
		Short: "Set the block count to n",
		Args:  usageArgs(0, 1, blockUsage),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.BlockAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			value := ""
			if len(args) == 1 {
				value = args[0]
			}
			return adapter.Update(NewContext(), "set", value)
		},
	}
}
