package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/ports/primary"
	"github.com/example/trinity/internal/ports/secondary"
)

const gateDoc = "---\nblocks: 0\ntests_passing: false\n---\n\n# Sprint Index\n"

func newTestGateService(f *fixture, runner *mockRunner) *TestGateServiceImpl {
	service := NewTestGateService(f.index, f.activity, runner, f.executor, nil)
	service.now = fixedClock()
	return service
}

func TestGateService_Pass(t *testing.T) {
	f := newFixture()
	f.setIndex(gateDoc)
	f.setActivity("# Activity\n")
	runner := &mockRunner{result: &secondary.CommandResult{ExitCode: 0, Stdout: "ok\n"}}
	service := newTestGateService(f, runner)

	resp, err := service.RunTests(context.Background(), primary.RunTestsRequest{Command: "go test ./..."})

	require.NoError(t, err)
	assert.True(t, resp.Passed)
	assert.Equal(t, 0, resp.ExitCode)
	assert.Equal(t, "ok\n", resp.Stdout)
	assert.False(t, resp.FieldInserted)
	assert.True(t, resp.Logged)
	assert.Equal(t, []string{"go test ./..."}, runner.calls)
	assert.Equal(t, "---\nblocks: 0\ntests_passing: true\n---\n\n# Sprint Index\n", f.indexContent())
	assert.Equal(t,
		"# Activity\n[2026-03-14 09:26] <role>BUILDER</role> — <action>Automated Tests</action> — Tests Passed: go test ./...\n",
		f.activityContent())
	require.Len(t, f.audit.calls, 1)
	assert.Equal(t, auditCall{testIndexPath, "tests_passing", "false", "true"}, f.audit.calls[0])
}

func TestGateService_FailInsertsField(t *testing.T) {
	f := newFixture()
	f.setIndex("---\nblocks: 0\n---\n\n# Sprint Index\n")
	f.setActivity("")
	runner := &mockRunner{result: &secondary.CommandResult{ExitCode: 3, Stderr: "boom\n"}}
	service := newTestGateService(f, runner)

	resp, err := service.RunTests(context.Background(), primary.RunTestsRequest{Command: "make test"})

	require.NoError(t, err, "a failing command is not a service error")
	assert.False(t, resp.Passed)
	assert.Equal(t, 3, resp.ExitCode)
	assert.Equal(t, "boom\n", resp.Stderr)
	assert.True(t, resp.FieldInserted)
	assert.Equal(t, "---\nblocks: 0\ntests_passing: false\n---\n\n# Sprint Index\n", f.indexContent())
	assert.Contains(t, f.activityContent(), "Tests Failed: make test")
}

func TestGateService_SkipsMissingActivityLog(t *testing.T) {
	f := newFixture()
	f.setIndex(gateDoc)
	runner := &mockRunner{result: &secondary.CommandResult{}}
	service := newTestGateService(f, runner)

	resp, err := service.RunTests(context.Background(), primary.RunTestsRequest{Command: "true"})

	require.NoError(t, err)
	assert.False(t, resp.Logged)
	_, exists := f.ws.files[testActivityPath]
	assert.False(t, exists, "activity log is never created by the gate")
}

func TestGateService_DoesNotRotate(t *testing.T) {
	f := newFixture()
	f.setIndex(gateDoc)
	f.setActivity(joinLines(numberedLines("line ", 600)))
	runner := &mockRunner{result: &secondary.CommandResult{}}
	service := newTestGateService(f, runner)

	_, err := service.RunTests(context.Background(), primary.RunTestsRequest{Command: "true"})

	require.NoError(t, err)
	lines, err := f.activity.ReadLines(context.Background())
	require.NoError(t, err)
	assert.Len(t, lines, 601)
}

func TestGateService_PreconditionsCheckedBeforeRunning(t *testing.T) {
	tests := []struct {
		name    string
		doc     *string
		command string
		kind    error
	}{
		{"missing command", ptr(gateDoc), "", apperr.ErrUsage},
		{"blank command", ptr(gateDoc), "   ", apperr.ErrUsage},
		{"missing index", nil, "true", apperr.ErrNotFound},
		{"no frontmatter", ptr("# Sprint Index\n"), "true", apperr.ErrMalformedDocument},
		{"unterminated frontmatter", ptr("---\nblocks: 1\n"), "true", apperr.ErrMalformedDocument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			if tt.doc != nil {
				f.setIndex(*tt.doc)
			}
			runner := &mockRunner{result: &secondary.CommandResult{}}
			service := newTestGateService(f, runner)
			started := false

			_, err := service.RunTests(context.Background(), primary.RunTestsRequest{
				Command: tt.command,
				OnStart: func(string) { started = true },
			})

			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)
			assert.Empty(t, runner.calls, "command must not run")
			assert.False(t, started, "start is not announced")
			assert.Equal(t, 0, f.ws.writes)
		})
	}
}

func TestGateService_AnnouncesStartBeforeRunning(t *testing.T) {
	f := newFixture()
	f.setIndex(gateDoc)
	runner := &mockRunner{result: &secondary.CommandResult{}}
	service := newTestGateService(f, runner)
	var started []string

	_, err := service.RunTests(context.Background(), primary.RunTestsRequest{
		Command: "make check",
		OnStart: func(command string) {
			assert.Empty(t, runner.calls, "announced before the command runs")
			started = append(started, command)
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"make check"}, started)
}

func TestGateService_RunnerFailureIsIO(t *testing.T) {
	f := newFixture()
	f.setIndex(gateDoc)
	runner := &mockRunner{err: errors.New("sh: not found")}
	service := newTestGateService(f, runner)

	_, err := service.RunTests(context.Background(), primary.RunTestsRequest{Command: "true"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrIO))
	assert.Equal(t, gateDoc, f.indexContent())
}

func TestGateEntry(t *testing.T) {
	assert.Equal(t, "<role>BUILDER</role> — <action>Automated Tests</action> — Tests Passed: npm test", GateEntry("npm test", true))
	assert.Equal(t, "<role>BUILDER</role> — <action>Automated Tests</action> — Tests Failed: npm test", GateEntry("npm test", false))
}
