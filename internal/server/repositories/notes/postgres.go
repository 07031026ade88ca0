// Package notes provides PostgreSQL-backed note persistence.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/dbx"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

// PostgresRepository implements note storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts note, assigning an id when empty, and fills CreatedAt.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO notes (id, user_id, title, body)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, note.ID, note.UserID, note.Title, note.Body).Scan(&note.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// FindByID returns the note regardless of owner; callers apply the
// ownership check.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Note, error) {
	query :=
		`SELECT id, user_id, title, body, created_at FROM notes
		 WHERE id = $1
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Body, &note.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || dbx.IsInvalidTextRepresentation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// ListByUser returns the user's notes, oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `SELECT id, user_id, title, body, created_at FROM notes
		WHERE user_id = $1
		ORDER BY created_at, id
		`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Body, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Update changes the non-nil fields of upd and returns the stored note.
// user_id is never written.
func (r *PostgresRepository) Update(ctx context.Context, id string, upd models.NoteUpdate) (*models.Note, error) {
	query :=
		`UPDATE notes SET
			title = COALESCE($2::text, title),
			body = COALESCE($3::text, body)
		 WHERE id = $1
		 RETURNING id, user_id, title, body, created_at
		 `

	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, nullable(upd.Title), nullable(upd.Body)).
		Scan(&note.ID, &note.UserID, &note.Title, &note.Body, &note.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
