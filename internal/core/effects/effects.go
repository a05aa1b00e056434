// Package effects defines effect types as data structures representing I/O operations.
// This is the foundation of the Functional Core / Imperative Shell pattern.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
// Effects represent I/O operations as data that can be interpreted by the shell.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// File operations understood by the executor.
const (
	FileMkdir  = "mkdir"
	FileWrite  = "write"  // whole-file replace via temp file + rename
	FileCreate = "create" // new file, fails if the path exists
)

// LogEffect represents a diagnostic logging operation.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions; 0 keeps the existing mode on write
}

func (e FileEffect) EffectType() string { return "file" }

// AuditEffect records one frontmatter field change or log rotation.
type AuditEffect struct {
	Document string
	Field    string
	OldValue string
	NewValue string
}

func (e AuditEffect) EffectType() string { return "audit" }

// CompositeEffect holds multiple effects to be executed in sequence.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
