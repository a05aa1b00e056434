// Package rotation contains the pure planning logic for activity log rotation.
// This is part of the Functional Core - no I/O, only pure functions.
package rotation

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/trinity/internal/core/effects"
)

// Policy controls when and how the live log is split.
type Policy struct {
	// Threshold is the largest line count that does not trigger rotation.
	Threshold int
	// HeaderLines are kept in the live log and copied to every archive.
	HeaderLines int
	// TailLines are the most recent lines kept in the live log.
	TailLines int
}

// DefaultPolicy returns the standard 500/25/50 policy.
func DefaultPolicy() Policy {
	return Policy{Threshold: 500, HeaderLines: 25, TailLines: 50}
}

// Validate checks the policy bounds.
func (p Policy) Validate() error {
	if p.Threshold < 1 {
		return fmt.Errorf("rotation threshold must be >= 1, got %d", p.Threshold)
	}
	if p.HeaderLines < 0 {
		return fmt.Errorf("rotation header lines must be >= 0, got %d", p.HeaderLines)
	}
	if p.TailLines < 0 {
		return fmt.Errorf("rotation tail lines must be >= 0, got %d", p.TailLines)
	}
	return nil
}

// Plan is the outcome of evaluating the policy against the live log.
type Plan struct {
	Rotate   bool
	Total    int
	Header   []string
	Archived []string
	Tail     []string
}

// ArchiveLines returns the archive contents: header then the archived middle.
func (p Plan) ArchiveLines() []string {
	return concat(p.Header, p.Archived)
}

// LiveLines returns the rewritten live log: header then the kept tail.
func (p Plan) LiveLines() []string {
	return concat(p.Header, p.Tail)
}

func concat(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// PlanRotation partitions lines into header, middle and tail.
//
// header = [0, min(H, N)), tail = [max(headerEnd, N-T), N), middle is what
// lies between. The tail never reaches into the header, so no line is kept
// twice in the live log. An empty middle means there is nothing to archive
// and no rotation happens.
func PlanRotation(lines []string, policy Policy) Plan {
	n := len(lines)
	plan := Plan{Total: n}
	if n <= policy.Threshold {
		return plan
	}

	headerEnd := min(max(policy.HeaderLines, 0), n)
	tailStart := max(headerEnd, n-max(policy.TailLines, 0))
	if tailStart == headerEnd {
		return plan
	}

	plan.Rotate = true
	plan.Header = lines[:headerEnd]
	plan.Archived = lines[headerEnd:tailStart]
	plan.Tail = lines[tailStart:]
	return plan
}

// ArchiveName returns the archive file name for a log rotated at now.
// attempt > 1 adds a suffix for rotations that collide within one second.
func ArchiveName(logPath string, now time.Time, attempt int) string {
	base := filepath.Base(logPath)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if ext == "" {
		ext = ".md"
	}
	name := fmt.Sprintf("%s_%s", stem, now.Format("20060102150405"))
	if attempt > 1 {
		name = fmt.Sprintf("%s-%d", name, attempt)
	}
	return name + ext
}

// Join renders lines as newline-terminated file content.
func Join(lines []string) []byte {
	if len(lines) == 0 {
		return nil
	}
	return []byte(strings.Join(lines, "\n") + "\n")
}

// Effects describes the I/O performing plan: archive first, then the live rewrite,
// so a crash between the two never loses the archived middle.
func Effects(plan Plan, logPath, archivePath string) []effects.Effect {
	if !plan.Rotate {
		return []effects.Effect{effects.NoEffect{}}
	}
	return []effects.Effect{
		effects.FileEffect{Operation: effects.FileMkdir, Path: filepath.Dir(archivePath), Mode: 0o755},
		effects.FileEffect{Operation: effects.FileCreate, Path: archivePath, Content: Join(plan.ArchiveLines()), Mode: 0o644},
		effects.FileEffect{Operation: effects.FileWrite, Path: logPath, Content: Join(plan.LiveLines())},
		effects.CompositeEffect{Effects: []effects.Effect{
			effects.LogEffect{
				Level:   "info",
				Message: "activity log rotated",
				Fields: map[string]any{
					"archive":  archivePath,
					"archived": len(plan.Archived),
					"kept":     len(plan.LiveLines()),
				},
			},
			effects.AuditEffect{
				Document: logPath,
				Field:    "rotation",
				OldValue: fmt.Sprintf("%d lines", plan.Total),
				NewValue: fmt.Sprintf("%d lines (archived to %s)", len(plan.LiveLines()), archivePath),
			},
		}},
	}
}
