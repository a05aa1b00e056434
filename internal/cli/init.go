package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/wire"
)

// InitCmd returns the init command
func InitCmd() *cobra.Command {
	var withConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the sprint index and activity log",
		Long: `Scaffold the sprint index and activity log in the project directory.

Existing files are never overwritten. With --config the effective
configuration is also written to .trinity/config.yaml.`,
		Args: usageArgs(0, 0, "Usage: trinity init [--config]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.ProjectAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Init(NewContext(), withConfig)
		},
	}

	cmd.Flags().BoolVar(&withConfig, "config", false, "Also write .trinity/config.yaml")

	return cmd
}
