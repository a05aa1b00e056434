package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/ports/primary"
)

// GateAdapter is a thin adapter that translates CLI operations to TestGateService calls.
type GateAdapter struct {
	service   primary.TestGateService
	indexPath string
	out       io.Writer
	errOut    io.Writer
}

// NewGateAdapter creates a new GateAdapter. Command stderr and the failure
// verdict go to errOut.
func NewGateAdapter(service primary.TestGateService, indexPath string, out, errOut io.Writer) *GateAdapter {
	return &GateAdapter{
		service:   service,
		indexPath: indexPath,
		out:       out,
		errOut:    errOut,
	}
}

// Run executes the test command. A failing command yields an
// *apperr.ExitError carrying the command's exit code.
func (a *GateAdapter) Run(ctx context.Context, command string) error {
	resp, err := a.service.RunTests(ctx, primary.RunTestsRequest{
		Command: command,
		OnStart: func(command string) {
			fmt.Fprintf(a.out, "Executing: %s\n", command)
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "\n--- Command Output ---")
	fmt.Fprint(a.out, withNewline(resp.Stdout))
	if resp.Stderr != "" {
		fmt.Fprint(a.errOut, withNewline(resp.Stderr))
	}
	fmt.Fprintln(a.out, "----------------------")
	fmt.Fprintln(a.out)

	doc := filepath.Base(a.indexPath)
	if resp.Passed {
		fmt.Fprintf(a.out, "%s Updated %s (tests_passing: true)\n", color.New(color.FgGreen, color.Bold).Sprint("✓ Tests PASSED."), doc)
		return nil
	}

	verdict := color.New(color.FgRed, color.Bold).Sprintf("✗ Tests FAILED (exit code %d).", resp.ExitCode)
	fmt.Fprintf(a.errOut, "%s Updated %s (tests_passing: false)\n", verdict, doc)
	return &apperr.ExitError{Code: resp.ExitCode}
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
