// Package shell runs user-supplied commands through the host shell.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/example/trinity/internal/ports/secondary"
)

// Runner implements secondary.CommandRunner with os/exec.
type Runner struct {
	dir string
}

// NewRunner creates a runner executing commands in dir.
// An empty dir runs commands in the current working directory.
func NewRunner(dir string) *Runner {
	return &Runner{dir: dir}
}

// Run executes command with `sh -c` (`cmd /C` on Windows) and waits for it.
func (r *Runner) Run(ctx context.Context, command string) (*secondary.CommandResult, error) {
	name, args := shellCommand(command)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := &secondary.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return nil, fmt.Errorf("failed to run %q: %w", command, err)
	}

	result.ExitCode = exitErr.ExitCode()
	// Killed by a signal; still a failure the caller can exit with.
	if result.ExitCode < 0 {
		result.ExitCode = 1
	}
	return result, nil
}

func shellCommand(command string) (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C", command}
	}
	return "sh", []string{"-c", command}
}

var _ secondary.CommandRunner = (*Runner)(nil)
