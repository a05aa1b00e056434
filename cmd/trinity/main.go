package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/cli"
	"github.com/example/trinity/internal/version"
	"github.com/example/trinity/internal/wire"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "trinity",
		Short:   "trinity - sprint bookkeeping for the architect/builder/orchestrator loop",
		Version: version.String(),
		Long: `trinity keeps the sprint index frontmatter and the activity log up to date.
It counts blocks, appends and rotates the activity log, records test results,
and moves the sprint between statuses.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: cli.Bootstrap,
	}
	cli.AddGlobalFlags(rootCmd)

	// Sprint bookkeeping
	rootCmd.AddCommand(cli.BlockCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.TestCmd())
	rootCmd.AddCommand(cli.TransitionCmd())

	// Inspection and setup
	rootCmd.AddCommand(cli.StatusCmd())
	rootCmd.AddCommand(cli.HistoryCmd())
	rootCmd.AddCommand(cli.InitCmd())

	err := rootCmd.Execute()
	if cerr := wire.Close(); cerr != nil && err == nil {
		err = cerr
	}
	os.Exit(exitCode(err))
}

// exitCode reports err and returns the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *apperr.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return 1
}
