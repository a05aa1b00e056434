package primary

import "context"

// TestGateService defines the primary port for the test gate.
type TestGateService interface {
	// RunTests executes the command and records the verdict in the index
	// document and, when present, the activity log.
	RunTests(ctx context.Context, req RunTestsRequest) (*RunTestsResponse, error)
}

// RunTestsRequest contains parameters for a test gate run.
type RunTestsRequest struct {
	Command string
	// OnStart, when set, is called once the preconditions hold and just
	// before the command runs.
	OnStart func(command string)
}

// RunTestsResponse contains the verdict of a test gate run.
// A failing command is a successful run with Passed == false.
type RunTestsResponse struct {
	Command       string
	Passed        bool
	ExitCode      int
	Stdout        string
	Stderr        string
	FieldInserted bool // tests_passing was absent and has been added
	Logged        bool // an activity log entry was appended
}
