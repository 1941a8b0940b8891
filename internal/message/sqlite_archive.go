package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/guilhermegouw/chatlog/internal/db"
)

// SQLiteArchive stores messages in a SQLite database. Unlike the flat file it
// also keeps each message's style.
type SQLiteArchive struct {
	path string
}

// NewSQLiteArchive creates a SQLite-backed archive at path. The database is
// opened for each operation and closed afterwards.
func NewSQLiteArchive(path string) *SQLiteArchive {
	return &SQLiteArchive{path: path}
}

// Location returns the database path.
func (a *SQLiteArchive) Location() string {
	return a.path
}

// Save replaces the table contents with msgs in a single transaction.
func (a *SQLiteArchive) Save(ctx context.Context, msgs []*Message) error {
	database, err := db.Open(a.path)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }() //nolint:errcheck // Best-effort close after commit.

	savedAt := time.Now().UnixMilli()
	return database.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM messages`); err != nil {
			return fmt.Errorf("clearing messages: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO messages (id, text, style, saved_at) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer func() { _ = stmt.Close() }() //nolint:errcheck // Statement is scoped to the transaction.

		for _, msg := range msgs {
			if _, err := stmt.ExecContext(ctx, msg.ID, msg.Text, string(msg.Style), savedAt); err != nil {
				return fmt.Errorf("inserting message %d: %w", msg.ID, err)
			}
		}
		return nil
	})
}

// Load reads every message ordered by id.
func (a *SQLiteArchive) Load(ctx context.Context) (*LoadResult, error) {
	if _, err := os.Stat(a.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrArchiveNotFound, a.path)
		}
		return nil, fmt.Errorf("checking database: %w", err)
	}

	database, err := db.Open(a.path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = database.Close() }() //nolint:errcheck // Read-only use.

	rows, err := database.QueryContext(ctx, `SELECT id, text, style FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer func() { _ = rows.Close() }() //nolint:errcheck // Rows are fully drained below.

	result := &LoadResult{}
	for rows.Next() {
		var (
			id    int
			text  string
			style string
		)
		if err := rows.Scan(&id, &text, &style); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		result.Messages = append(result.Messages, &Message{ID: id, Text: text, Style: ParseStyle(style)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating messages: %w", err)
	}

	return result, nil
}
