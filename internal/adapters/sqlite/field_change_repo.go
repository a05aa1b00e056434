// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/trinity/internal/ports/secondary"
)

// FieldChangeRepository implements secondary.FieldChangeRepository with SQLite.
type FieldChangeRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewFieldChangeRepository creates a new SQLite field change repository.
func NewFieldChangeRepository(db *sql.DB) *FieldChangeRepository {
	return &FieldChangeRepository{db: db, now: time.Now}
}

// Create persists a new field change. CreatedAt is assigned by the repository.
func (r *FieldChangeRepository) Create(ctx context.Context, change *secondary.FieldChangeRecord) error {
	var actor, oldValue, newValue sql.NullString
	if change.Actor != "" {
		actor = sql.NullString{String: change.Actor, Valid: true}
	}
	if change.OldValue != "" {
		oldValue = sql.NullString{String: change.OldValue, Valid: true}
	}
	if change.NewValue != "" {
		newValue = sql.NullString{String: change.NewValue, Valid: true}
	}

	createdAt := r.now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO field_changes (id, actor, document, field, old_value, new_value, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		change.ID,
		actor,
		change.Document,
		change.Field,
		oldValue,
		newValue,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create field change: %w", err)
	}

	change.CreatedAt = createdAt.Format(time.RFC3339)
	return nil
}

// List retrieves field changes matching the given filters, newest first.
func (r *FieldChangeRepository) List(ctx context.Context, filters secondary.FieldChangeFilters) ([]*secondary.FieldChangeRecord, error) {
	query := `SELECT id, actor, document, field, old_value, new_value, created_at FROM field_changes WHERE 1=1`
	args := []any{}

	if filters.Document != "" {
		query += " AND document = ?"
		args = append(args, filters.Document)
	}

	if filters.Field != "" {
		query += " AND field = ?"
		args = append(args, filters.Field)
	}

	if filters.Actor != "" {
		query += " AND actor = ?"
		args = append(args, filters.Actor)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list field changes: %w", err)
	}
	defer rows.Close()

	var changes []*secondary.FieldChangeRecord
	for rows.Next() {
		var (
			actor     sql.NullString
			oldValue  sql.NullString
			newValue  sql.NullString
			createdAt time.Time
		)

		record := &secondary.FieldChangeRecord{}
		err := rows.Scan(&record.ID,
			&actor,
			&record.Document,
			&record.Field,
			&oldValue,
			&newValue,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan field change: %w", err)
		}
		record.Actor = actor.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		changes = append(changes, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list field changes: %w", err)
	}

	return changes, nil
}

// Ensure FieldChangeRepository implements the interface
var _ secondary.FieldChangeRepository = (*FieldChangeRepository)(nil)
