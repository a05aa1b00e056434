package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/trinity/internal/apperr"
	"github.com/example/trinity/internal/ports/primary"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// mockBlockService implements primary.BlockService for testing
type mockBlockService struct {
	getBlocksFn    func(ctx context.Context) (int, error)
	updateBlocksFn func(ctx context.Context, req primary.UpdateBlocksRequest) (*primary.UpdateBlocksResponse, error)

	lastUpdateReq primary.UpdateBlocksRequest
}

func (m *mockBlockService) GetBlocks(ctx context.Context) (int, error) {
	if m.getBlocksFn != nil {
		return m.getBlocksFn(ctx)
	}
	return 0, nil
}

func (m *mockBlockService) UpdateBlocks(ctx context.Context, req primary.UpdateBlocksRequest) (*primary.UpdateBlocksResponse, error) {
	m.lastUpdateReq = req
	if m.updateBlocksFn != nil {
		return m.updateBlocksFn(ctx, req)
	}
	return &primary.UpdateBlocksResponse{Previous: 1, Current: 2}, nil
}

func TestBlockAdapter(t *testing.T) {
	t.Run("get prints bare integer", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewBlockAdapter(&mockBlockService{getBlocksFn: func(context.Context) (int, error) { return 5, nil }}, &out)

		require.NoError(t, adapter.Get(context.Background()))
		assert.Equal(t, "5\n", out.String())
	})

	t.Run("update reports new count", func(t *testing.T) {
		var out bytes.Buffer
		mock := &mockBlockService{}
		adapter := NewBlockAdapter(mock, &out)

		require.NoError(t, adapter.Update(context.Background(), "set", "2"))
		assert.Equal(t, "Block count updated to 2\n", out.String())
		assert.Equal(t, primary.UpdateBlocksRequest{Action: "set", Value: "2"}, mock.lastUpdateReq)
	})

	t.Run("update passes errors through", func(t *testing.T) {
		var out bytes.Buffer
		mock := &mockBlockService{updateBlocksFn: func(context.Context, primary.UpdateBlocksRequest) (*primary.UpdateBlocksResponse, error) {
			return nil, apperr.InvalidArgument("Block count must be an integer")
		}}
		adapter := NewBlockAdapter(mock, &out)

		err := adapter.Update(context.Background(), "set", "x")
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
		assert.Empty(t, out.String())
	})
}

// mockActivityService implements primary.ActivityService for testing
type mockActivityService struct {
	appendResp *primary.AppendEntryResponse
	tail       []string
	followed   []string
	lastLimit  int
}

func (m *mockActivityService) AppendEntry(ctx context.Context, text string) (*primary.AppendEntryResponse, error) {
	return m.appendResp, nil
}

func (m *mockActivityService) TailEntries(ctx context.Context, limit int) ([]string, error) {
	m.lastLimit = limit
	return m.tail, nil
}

func (m *mockActivityService) FollowEntries(ctx context.Context, fn func(line string)) error {
	for _, line := range m.followed {
		fn(line)
	}
	return nil
}

func TestActivityAdapter_Append(t *testing.T) {
	var out bytes.Buffer
	adapter := NewActivityAdapter(&mockActivityService{appendResp: &primary.AppendEntryResponse{
		Entry:       "[2026-03-14 09:26] hi",
		Rotated:     true,
		ArchivePath: "docs/archive/ACTIVITY_20260314092653.md",
	}}, &out)

	require.NoError(t, adapter.Append(context.Background(), "hi"))
	assert.Equal(t,
		"Logged: [2026-03-14 09:26] hi\nLog rotated. Older entries moved to docs/archive/ACTIVITY_20260314092653.md\n",
		out.String())
}

func TestActivityAdapter_Tail(t *testing.T) {
	var out bytes.Buffer
	mock := &mockActivityService{tail: []string{"a", "b"}, followed: []string{"c"}}
	adapter := NewActivityAdapter(mock, &out)

	require.NoError(t, adapter.Tail(context.Background(), 2, false))
	assert.Equal(t, "a\nb\n", out.String())
	assert.Equal(t, 2, mock.lastLimit)

	out.Reset()
	require.NoError(t, adapter.Tail(context.Background(), 2, true))
	assert.Equal(t, "a\nb\nc\n", out.String())
}

// mockTestGateService implements primary.TestGateService for testing
type mockTestGateService struct {
	resp *primary.RunTestsResponse
	err  error
}

func (m *mockTestGateService) RunTests(ctx context.Context, req primary.RunTestsRequest) (*primary.RunTestsResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	if req.OnStart != nil {
		req.OnStart(req.Command)
	}
	return m.resp, nil
}

func TestGateAdapter_Pass(t *testing.T) {
	var out, errOut bytes.Buffer
	adapter := NewGateAdapter(&mockTestGateService{resp: &primary.RunTestsResponse{Passed: true, Stdout: "ok"}},
		"docs/sprints/INDEX.md", &out, &errOut)

	require.NoError(t, adapter.Run(context.Background(), "go test"))
	assert.Equal(t,
		"Executing: go test\n\n--- Command Output ---\nok\n----------------------\n\n✓ Tests PASSED. Updated INDEX.md (tests_passing: true)\n",
		out.String())
	assert.Empty(t, errOut.String())
}

func TestGateAdapter_FailReturnsExitCode(t *testing.T) {
	var out, errOut bytes.Buffer
	adapter := NewGateAdapter(&mockTestGateService{resp: &primary.RunTestsResponse{ExitCode: 2, Stderr: "FAIL\n"}},
		"docs/sprints/INDEX.md", &out, &errOut)

	err := adapter.Run(context.Background(), "go test")

	var exitErr *apperr.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.Code)
	assert.Equal(t, "FAIL\n✗ Tests FAILED (exit code 2). Updated INDEX.md (tests_passing: false)\n", errOut.String())
}

func TestGateAdapter_PreconditionErrorSkipsOutput(t *testing.T) {
	tests := []struct {
		name    string
		command string
		err     error
	}{
		{"missing command", "", apperr.Usage("Usage: trinity test \"<test-command>\"")},
		{"missing index", "go test", apperr.NotFound("INDEX.md not found. Ensure you are in the project root.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			adapter := NewGateAdapter(&mockTestGateService{err: tt.err}, "INDEX.md", &out, &errOut)

			err := adapter.Run(context.Background(), tt.command)

			assert.ErrorIs(t, err, tt.err)
			assert.Empty(t, out.String(), "nothing is printed before the command starts")
		})
	}
}

// mockTransitionService implements primary.TransitionService for testing
type mockTransitionService struct{}

func (m *mockTransitionService) Transition(ctx context.Context, status string) (*primary.TransitionResponse, error) {
	return &primary.TransitionResponse{Status: status, Role: "ARCHITECT"}, nil
}

func (m *mockTransitionService) ListTransitions() []primary.StatusRole {
	return []primary.StatusRole{{Status: "in-review", Role: "ARCHITECT"}, {Status: "human-review", Role: "HUMAN"}}
}

func TestTransitionAdapter(t *testing.T) {
	var out bytes.Buffer
	adapter := NewTransitionAdapter(&mockTransitionService{}, &out)

	require.NoError(t, adapter.Transition(context.Background(), "in-review"))
	assert.Equal(t, "Transitioned to in-review. Next dispatched role: ARCHITECT\n", out.String())

	out.Reset()
	adapter.List()
	assert.Contains(t, out.String(), "in-review         ARCHITECT\n")
	assert.Contains(t, out.String(), "human-review      HUMAN\n")
}

// mockStatusService implements primary.StatusService for testing
type mockStatusService struct {
	state *primary.SprintState
}

func (m *mockStatusService) GetStatus(ctx context.Context) (*primary.SprintState, error) {
	return m.state, nil
}

func TestStatusAdapter_Show(t *testing.T) {
	blocks := 3
	passing := false
	var out bytes.Buffer
	adapter := NewStatusAdapter(&mockStatusService{state: &primary.SprintState{
		DocumentPath: "INDEX.md",
		Blocks:       &blocks,
		SprintStatus: "merged",
		ActiveRole:   "BUILDER",
		DerivedRole:  "ORCHESTRATOR",
		TestsPassing: &passing,
	}}, &out)

	require.NoError(t, adapter.Show(context.Background()))
	assert.Contains(t, out.String(), "Sprint status: merged\n")
	assert.Contains(t, out.String(), "Blocks:        3\n")
	assert.Contains(t, out.String(), "Tests:         failing\n")
	assert.Contains(t, out.String(), "! active_role is BUILDER but merged dispatches ORCHESTRATOR")
}

// mockHistoryService implements primary.HistoryService for testing
type mockHistoryService struct {
	enabled     bool
	changes     []*primary.FieldChange
	lastFilters primary.HistoryFilters
}

func (m *mockHistoryService) Enabled() bool { return m.enabled }

func (m *mockHistoryService) ListChanges(ctx context.Context, filters primary.HistoryFilters) ([]*primary.FieldChange, error) {
	m.lastFilters = filters
	return m.changes, nil
}

func TestHistoryAdapter_List(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewHistoryAdapter(&mockHistoryService{}, &out)

		require.NoError(t, adapter.List(context.Background(), "", 10))
		assert.Contains(t, out.String(), "Audit trail is disabled")
	})

	t.Run("rows", func(t *testing.T) {
		var out bytes.Buffer
		mock := &mockHistoryService{enabled: true, changes: []*primary.FieldChange{
			{Actor: "BUILDER", Document: "/p/docs/sprints/INDEX.md", Field: "blocks", OldValue: "1", NewValue: "2", CreatedAt: "2026-03-14T09:26:53Z"},
		}}
		adapter := NewHistoryAdapter(mock, &out)

		require.NoError(t, adapter.List(context.Background(), "blocks", 10))
		assert.Equal(t, primary.HistoryFilters{Field: "blocks", Limit: 10}, mock.lastFilters)
		assert.Contains(t, out.String(), "INDEX.md")
		assert.Contains(t, out.String(), "1 → 2")
	})

	t.Run("empty", func(t *testing.T) {
		var out bytes.Buffer
		adapter := NewHistoryAdapter(&mockHistoryService{enabled: true}, &out)

		require.NoError(t, adapter.List(context.Background(), "", 0))
		assert.Equal(t, "No changes recorded\n", out.String())
	})
}

// mockProjectService implements primary.ProjectService for testing
type mockProjectService struct {
	lastReq primary.InitProjectRequest
}

func (m *mockProjectService) InitProject(ctx context.Context, req primary.InitProjectRequest) (*primary.InitProjectResponse, error) {
	m.lastReq = req
	return &primary.InitProjectResponse{Created: []string{"ACTIVITY.md"}, Skipped: []string{"INDEX.md"}}, nil
}

func TestProjectAdapter_Init(t *testing.T) {
	var out bytes.Buffer
	mock := &mockProjectService{}
	adapter := NewProjectAdapter(mock, &out)

	require.NoError(t, adapter.Init(context.Background(), true))
	assert.True(t, mock.lastReq.WithConfig)
	assert.Equal(t, "CREATE  ACTIVITY.md\nEXISTS  INDEX.md\n", out.String())
}
