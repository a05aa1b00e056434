package secondary

import "context"

// WorkspaceAdapter defines the secondary port for project filesystem operations.
type WorkspaceAdapter interface {
	// File operations
	FileExists(ctx context.Context, path string) (bool, error)
	WriteFile(ctx context.Context, path string, content []byte, mode uint32) error
	CreateFile(ctx context.Context, path string, content []byte, mode uint32) error

	// Directory operations
	CreateDirectory(ctx context.Context, path string, mode uint32) error
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// Path resolution
	GetProjectDir() string
	ResolvePath(rel string) string
}

// CommandRunner defines the secondary port for running a shell command.
type CommandRunner interface {
	// Run executes command through the host shell and waits for it.
	// A non-zero exit is reported in the result, not as an error; err is
	// only set when the command could not be run at all.
	Run(ctx context.Context, command string) (*CommandResult, error)
}

// CommandResult captures the outcome of a finished command.
type CommandResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
