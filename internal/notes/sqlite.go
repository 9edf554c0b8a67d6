package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL DEFAULT '',
	content    TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS notes_updated_at ON notes(updated_at DESC);
`

// SQLiteStore keeps notes in a single table; updated_at is stored as unix
// milliseconds.
type SQLiteStore struct {
	conn *sql.DB
	Path string
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := conn.ExecContext(ctx, sqliteSchema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{conn: conn, Path: path}, nil
}

func (s *SQLiteStore) GetNote(ctx context.Context, id string) (*Note, error) {
	row := s.conn.QueryRowContext(ctx,
		`SELECT id, title, content, updated_at FROM notes WHERE id = ?`, id)

	var note Note
	var updatedAt int64
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query note %q: %w", id, err)
	}
	note.UpdatedAt = time.UnixMilli(updatedAt).UTC()

	return &note, nil
}

func (s *SQLiteStore) ListNotes(ctx context.Context, query string) ([]Summary, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, title, content, updated_at FROM notes
		WHERE ? = '' OR instr(lower(title), lower(?)) > 0
		ORDER BY updated_at DESC, id ASC`,
		strings.TrimSpace(query), strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	items := make([]Summary, 0, 16)
	for rows.Next() {
		var item Summary
		var updatedAt int64
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		item.UpdatedAt = time.UnixMilli(updatedAt).UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	return items, nil
}

// PutNotes upserts notes in one transaction.
func (s *SQLiteStore) PutNotes(ctx context.Context, notes []Note) error {
	for _, note := range notes {
		if err := note.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notes (id, title, content, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_at = excluded.updated_at`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, note := range notes {
		if _, err := stmt.ExecContext(ctx, note.ID, note.Title, note.Content, note.UpdatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("upsert note %q: %w", note.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit notes: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}
