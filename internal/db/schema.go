package db

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is recorded in schema_version after InitSchema runs.
const SchemaVersion = 1

// SchemaSQL is the complete audit schema.
//
// This is the single source of truth for the database schema. Tests load it
// through GetSchemaSQL() rather than declaring their own tables.
const SchemaSQL = `
-- Frontmatter field changes and log rotations
CREATE TABLE IF NOT EXISTS field_changes (
	id TEXT PRIMARY KEY,
	actor TEXT,
	document TEXT NOT NULL,
	field TEXT NOT NULL,
	old_value TEXT,
	new_value TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_field_changes_document ON field_changes(document);
CREATE INDEX IF NOT EXISTS idx_field_changes_field ON field_changes(field);
CREATE INDEX IF NOT EXISTS idx_field_changes_created ON field_changes(created_at);

CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER PRIMARY KEY,
	applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

// InitSchema creates the schema on conn if it is not already present.
func InitSchema(conn *sql.DB) error {
	if _, err := conn.Exec(SchemaSQL); err != nil {
		return err
	}

	var current int
	err := conn.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&current)
	if err != nil {
		return err
	}
	if current > SchemaVersion {
		return fmt.Errorf("audit database schema version %d is newer than supported version %d", current, SchemaVersion)
	}
	if current < SchemaVersion {
		if _, err := conn.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
