// Package frontmatter contains the pure line-level editing rules for the
// YAML frontmatter block of an index document.
// This is part of the Functional Core - no I/O, only pure functions.
//
// The document is treated as an ordered sequence of lines. Only the first
// line inside the frontmatter matching an anchored key pattern is ever
// touched; every other byte of the document is preserved, including the
// body, CRLF line endings and the presence or absence of a final newline.
package frontmatter

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Delimiter opens and closes the frontmatter block.
const Delimiter = "---"

// byteOrderMark may precede the opening delimiter; it is kept on rewrite.
const byteOrderMark = "\ufeff"

var (
	// ErrMissingFrontMatter indicates the document does not start with a delimiter line.
	ErrMissingFrontMatter = errors.New("frontmatter: missing opening delimiter")
	// ErrUnterminatedFrontMatter indicates no closing delimiter line was found.
	ErrUnterminatedFrontMatter = errors.New("frontmatter: missing closing delimiter")
	// ErrFieldNotFound indicates no frontmatter line matched the field pattern.
	ErrFieldNotFound = errors.New("frontmatter: field not found")
)

// Field describes a single top-level `key: value` frontmatter line.
type Field struct {
	Key     string
	pattern *regexp.Regexp
}

// NewField builds a field whose line must match `^key:\s*(valuePattern)$`.
func NewField(key, valuePattern string) Field {
	return Field{
		Key:     key,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(key) + `:\s*(` + valuePattern + `)$`),
	}
}

// Canonical index document fields.
var (
	Blocks       = NewField("blocks", `\d+`)
	SprintStatus = NewField("sprint_status", `.*`)
	ActiveRole   = NewField("active_role", `.*`)
	TestsPassing = NewField("tests_passing", `.*`)
)

// Line renders the field with the given value.
func (f Field) Line(value string) string {
	return f.Key + ": " + value
}

// match reports whether line (without its newline) is this field, and its value.
func (f Field) match(line string) (string, bool) {
	m := f.pattern.FindStringSubmatch(strings.TrimSuffix(line, "\r"))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Edit is a single field write applied by Apply.
type Edit struct {
	Field Field
	Value string
	// InsertIfMissing appends the field as the last frontmatter line when absent.
	InsertIfMissing bool
}

// Bounds returns the line index of the closing delimiter. The opening
// delimiter is always line 0.
func Bounds(lines []string) (int, error) {
	if len(lines) == 0 || !isDelimiter(strings.TrimPrefix(lines[0], byteOrderMark)) {
		return 0, ErrMissingFrontMatter
	}
	for i := 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			return i, nil
		}
	}
	return 0, ErrUnterminatedFrontMatter
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == Delimiter
}

// splitLines splits content on "\n"; strings.Join(lines, "\n") restores it exactly.
func splitLines(content []byte) []string {
	return strings.Split(string(content), "\n")
}

// Lookup returns the value of the first frontmatter line matching field.
func Lookup(content []byte, field Field) (string, error) {
	lines := splitLines(content)
	closeIdx, err := Bounds(lines)
	if err != nil {
		return "", err
	}
	if idx, value := find(lines, closeIdx, field); idx >= 0 {
		return value, nil
	}
	return "", fmt.Errorf("%w: %s", ErrFieldNotFound, field.Key)
}

func find(lines []string, closeIdx int, field Field) (int, string) {
	for i := 1; i < closeIdx; i++ {
		if value, ok := field.match(lines[i]); ok {
			return i, value
		}
	}
	return -1, ""
}

// Apply performs every edit in order and returns the new content.
// Either all edits succeed or content is returned unchanged with an error.
func Apply(content []byte, edits ...Edit) ([]byte, error) {
	lines := splitLines(content)
	closeIdx, err := Bounds(lines)
	if err != nil {
		return content, err
	}

	for _, edit := range edits {
		idx, _ := find(lines, closeIdx, edit.Field)
		if idx >= 0 {
			lines[idx] = edit.Field.Line(edit.Value) + lineEnding(lines[idx])
			continue
		}
		if !edit.InsertIfMissing {
			return content, fmt.Errorf("%w: %s", ErrFieldNotFound, edit.Field.Key)
		}
		inserted := edit.Field.Line(edit.Value) + lineEnding(lines[closeIdx])
		lines = append(lines[:closeIdx], append([]string{inserted}, lines[closeIdx:]...)...)
		closeIdx++
	}

	return []byte(strings.Join(lines, "\n")), nil
}

func lineEnding(line string) string {
	if strings.HasSuffix(line, "\r") {
		return "\r"
	}
	return ""
}

// Parse decodes the frontmatter block as YAML for read-only inspection.
// It never feeds a rewrite; edits always go through Apply.
func Parse(content []byte) (map[string]any, error) {
	lines := splitLines(content)
	closeIdx, err := Bounds(lines)
	if err != nil {
		return nil, err
	}
	block := strings.Join(lines[1:closeIdx], "\n")
	fields := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &fields); err != nil {
		return nil, fmt.Errorf("frontmatter: parse yaml: %w", err)
	}
	return fields, nil
}
