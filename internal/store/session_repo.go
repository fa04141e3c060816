package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/upskillhq/skillpath/internal/auth"
)

// SessionRepo persists the session record. It implements auth.Repo.
type SessionRepo struct {
	db *sql.DB
}

var _ auth.Repo = (*SessionRepo)(nil)

// Load returns the persisted session record, or nil if none exists.
func (r *SessionRepo) Load(ctx context.Context) (*auth.Record, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT token, role, employee_id FROM session WHERE id = 1`)

	var rec auth.Record
	err := row.Scan(&rec.Token, &rec.Role, &rec.EmployeeID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}
	return &rec, nil
}

// Save replaces the session record.
func (r *SessionRepo) Save(ctx context.Context, rec auth.Record) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO session (id, token, role, employee_id, updated_at)
VALUES (1, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
	token = excluded.token,
	role = excluded.role,
	employee_id = excluded.employee_id,
	updated_at = excluded.updated_at`,
		rec.Token, rec.Role, rec.EmployeeID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the session record in a single statement, so a reader
// after Clear never observes a partially erased session.
func (r *SessionRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
