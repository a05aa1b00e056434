package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/trinity/internal/ports/secondary"
)

// memWorkspace is an in-memory secondary.WorkspaceAdapter shared by the
// repository mocks, so effects written through the executor are visible
// to later reads.
type memWorkspace struct {
	files    map[string][]byte
	dirs     map[string]bool
	writeErr error
	writes   int
	mkdirs   []string
}

func newMemWorkspace() *memWorkspace {
	return &memWorkspace{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

var _ secondary.WorkspaceAdapter = (*memWorkspace)(nil)

func (m *memWorkspace) FileExists(ctx context.Context, path string) (bool, error) {
	_, ok := m.files[path]
	return ok, nil
}

func (m *memWorkspace) WriteFile(ctx context.Context, path string, content []byte, mode uint32) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	m.writes++
	m.files[path] = append([]byte(nil), content...)
	return nil
}

func (m *memWorkspace) CreateFile(ctx context.Context, path string, content []byte, mode uint32) error {
	if _, ok := m.files[path]; ok {
		return fmt.Errorf("create %s: %w", path, fs.ErrExist)
	}
	return m.WriteFile(ctx, path, content, mode)
}

func (m *memWorkspace) CreateDirectory(ctx context.Context, path string, mode uint32) error {
	m.mkdirs = append(m.mkdirs, path)
	m.dirs[path] = true
	return nil
}

func (m *memWorkspace) DirectoryExists(ctx context.Context, path string) (bool, error) {
	return m.dirs[path], nil
}

func (m *memWorkspace) GetProjectDir() string {
	return "/project"
}

func (m *memWorkspace) ResolvePath(rel string) string {
	return filepath.Join("/project", rel)
}

// memIndex implements secondary.IndexDocumentRepository over memWorkspace.
type memIndex struct {
	ws   *memWorkspace
	path string
}

var _ secondary.IndexDocumentRepository = (*memIndex)(nil)

func (m *memIndex) Path() string { return m.path }

func (m *memIndex) Exists(ctx context.Context) (bool, error) {
	return m.ws.FileExists(ctx, m.path)
}

func (m *memIndex) Read(ctx context.Context) ([]byte, error) {
	content, ok := m.ws.files[m.path]
	if !ok {
		return nil, errors.New("not found")
	}
	return content, nil
}

// memActivityLog implements secondary.ActivityLogRepository over memWorkspace.
type memActivityLog struct {
	ws         *memWorkspace
	path       string
	archiveDir string
	followed   []string
}

var _ secondary.ActivityLogRepository = (*memActivityLog)(nil)

func (m *memActivityLog) Path() string       { return m.path }
func (m *memActivityLog) ArchiveDir() string { return m.archiveDir }

func (m *memActivityLog) Exists(ctx context.Context) (bool, error) {
	return m.ws.FileExists(ctx, m.path)
}

func (m *memActivityLog) AppendLine(ctx context.Context, line string) error {
	content, ok := m.ws.files[m.path]
	if !ok {
		return errors.New("not found")
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		content = append(content, '\n')
	}
	m.ws.files[m.path] = append(content, []byte(line+"\n")...)
	return nil
}

func (m *memActivityLog) ReadLines(ctx context.Context) ([]string, error) {
	content, ok := m.ws.files[m.path]
	if !ok {
		return nil, errors.New("not found")
	}
	if len(content) == 0 {
		return nil, nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n"), nil
}

func (m *memActivityLog) Follow(ctx context.Context, fn func(line string)) error {
	for _, line := range m.followed {
		fn(line)
	}
	return nil
}

// mockRunner implements secondary.CommandRunner.
type mockRunner struct {
	result *secondary.CommandResult
	err    error
	calls  []string
}

var _ secondary.CommandRunner = (*mockRunner)(nil)

func (m *mockRunner) Run(ctx context.Context, command string) (*secondary.CommandResult, error) {
	m.calls = append(m.calls, command)
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

// auditCall is one recorded AuditWriter.LogUpdate call.
type auditCall struct {
	document, field, oldValue, newValue string
}

// mockAuditWriter implements secondary.AuditWriter.
type mockAuditWriter struct {
	calls []auditCall
	err   error
}

var _ secondary.AuditWriter = (*mockAuditWriter)(nil)

func (m *mockAuditWriter) LogUpdate(ctx context.Context, document, field, oldValue, newValue string) error {
	if m.err != nil {
		return m.err
	}
	m.calls = append(m.calls, auditCall{document, field, oldValue, newValue})
	return nil
}

// mockFieldChangeRepository implements secondary.FieldChangeRepository.
type mockFieldChangeRepository struct {
	records     []*secondary.FieldChangeRecord
	lastFilters secondary.FieldChangeFilters
	listErr     error
}

var _ secondary.FieldChangeRepository = (*mockFieldChangeRepository)(nil)

func (m *mockFieldChangeRepository) Create(ctx context.Context, change *secondary.FieldChangeRecord) error {
	m.records = append(m.records, change)
	return nil
}

func (m *mockFieldChangeRepository) List(ctx context.Context, filters secondary.FieldChangeFilters) ([]*secondary.FieldChangeRecord, error) {
	m.lastFilters = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.records, nil
}

const (
	testIndexPath    = "/project/docs/sprints/INDEX.md"
	testActivityPath = "/project/ACTIVITY.md"
	testArchiveDir   = "/project/docs/archive"
)

// fixture wires the services to one in-memory workspace.
type fixture struct {
	ws       *memWorkspace
	index    *memIndex
	activity *memActivityLog
	audit    *mockAuditWriter
	executor *DefaultEffectExecutor
}

func newFixture() *fixture {
	ws := newMemWorkspace()
	audit := &mockAuditWriter{}
	return &fixture{
		ws:       ws,
		index:    &memIndex{ws: ws, path: testIndexPath},
		activity: &memActivityLog{ws: ws, path: testActivityPath, archiveDir: testArchiveDir},
		audit:    audit,
		executor: NewEffectExecutor(ws, audit, nil),
	}
}

func (f *fixture) setIndex(content string) {
	f.ws.files[testIndexPath] = []byte(content)
}

func (f *fixture) indexContent() string {
	return string(f.ws.files[testIndexPath])
}

func (f *fixture) setActivity(content string) {
	f.ws.files[testActivityPath] = []byte(content)
}

func (f *fixture) activityContent() string {
	return string(f.ws.files[testActivityPath])
}

// fixedClock returns a clock frozen at 2026-03-14 09:26:53 local time.
func fixedClock() func() time.Time {
	t := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	return func() time.Time { return t }
}

func numberedLines(prefix string, n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("%s%d", prefix, i+1)
	}
	return lines
}

func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
