package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"notes-server/internal/domain"
	"notes-server/internal/repository"
)

const createNotesTable = `
CREATE TABLE IF NOT EXISTS notes (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL,
	author_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

const createNotesIndex = `CREATE INDEX IF NOT EXISTS notes_author_id ON notes (author_id, id);`

const selectNoteColumns = `SELECT id, author_id, title, content, created_at, updated_at FROM notes`

type NoteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createNotesTable); err != nil {
		return fmt.Errorf("create notes table: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, createNotesIndex); err != nil {
		return fmt.Errorf("create notes index: %w", err)
	}
	return nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO notes (id, author_id, title, content, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.AuthorID,
		note.Title,
		note.Content,
		note.CreatedAt.UTC(),
		note.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *NoteRepository) ListByAuthor(ctx context.Context, authorID string) ([]domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, selectNoteColumns+` WHERE author_id = ? ORDER BY seq`, authorID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := []domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) GetByAuthor(ctx context.Context, authorID, id string) (*domain.Note, error) {
	return r.get(ctx, r.db, authorID, id)
}

func (r *NoteRepository) UpdateByAuthor(ctx context.Context, authorID, id, title, content string, updatedAt time.Time) (*domain.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update note: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE notes
SET title = ?, content = ?, updated_at = ?
WHERE author_id = ? AND id = ?`,
		title,
		content,
		updatedAt.UTC(),
		authorID,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return nil, fmt.Errorf("update note rows: %w", err)
	} else if n == 0 {
		return nil, repository.ErrNotFound
	}

	note, err := r.get(ctx, tx, authorID, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update note: %w", err)
	}
	return note, nil
}

func (r *NoteRepository) DeleteByAuthor(ctx context.Context, authorID, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE author_id = ? AND id = ?`, authorID, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete note rows: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *NoteRepository) get(ctx context.Context, q queryRower, authorID, id string) (*domain.Note, error) {
	row := q.QueryRowContext(ctx, selectNoteColumns+` WHERE author_id = ? AND id = ? ORDER BY seq LIMIT 1`, authorID, id)
	return scanNote(row)
}

func scanNote(row interface {
	Scan(dest ...any) error
}) (*domain.Note, error) {
	var note domain.Note
	if err := row.Scan(
		&note.ID,
		&note.AuthorID,
		&note.Title,
		&note.Content,
		&note.CreatedAt,
		&note.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan note: %w", err)
	}
	return &note, nil
}
