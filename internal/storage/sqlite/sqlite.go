package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrUnavailable, err)
	}

	dbPath := filepath.Join(dataDir, "dailylink.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrUnavailable, err)
	}

	// Enable WAL mode
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrUnavailable, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS notebooks (
			id                   TEXT PRIMARY KEY,
			name                 TEXT NOT NULL CHECK(length(trim(name)) > 0),
			closed               INTEGER NOT NULL DEFAULT 0,
			daily_note_save_path TEXT NOT NULL DEFAULT ''
		);
		CREATE TABLE IF NOT EXISTS daily_notes (
			id          TEXT PRIMARY KEY,
			notebook_id TEXT NOT NULL REFERENCES notebooks(id) ON DELETE CASCADE,
			date        TEXT NOT NULL,
			hpath       TEXT NOT NULL,
			created_at  TEXT NOT NULL,
			UNIQUE(notebook_id, date)
		);
		CREATE TABLE IF NOT EXISTS local_storage (
			key TEXT PRIMARY KEY,
			val TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateNotebook creates an open notebook named name.
func (s *Store) CreateNotebook(ctx context.Context, name string) (note.Notebook, error) {
	if err := note.ValidateName(name); err != nil {
		return note.Notebook{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}
	id, err := note.NewID(time.Now())
	if err != nil {
		return note.Notebook{}, fmt.Errorf("generating notebook ID: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "INSERT INTO notebooks (id, name) VALUES (?, ?)", id, name); err != nil {
		return note.Notebook{}, fmt.Errorf("%w: inserting notebook: %v", storage.ErrUnavailable, err)
	}
	return note.Notebook{ID: id, Name: name}, nil
}

// SetClosed opens or closes a notebook.
func (s *Store) SetClosed(ctx context.Context, id string, closed bool) error {
	res, err := s.db.ExecContext(ctx, "UPDATE notebooks SET closed = ? WHERE id = ?", closed, id)
	if err != nil {
		return fmt.Errorf("%w: updating notebook: %v", storage.ErrUnavailable, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: notebook %s", storage.ErrNotFound, id)
	}
	return nil
}

// ListNotebooks returns all notebooks sorted by name.
func (s *Store) ListNotebooks(ctx context.Context) ([]note.Notebook, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, closed FROM notebooks ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%w: listing notebooks: %v", storage.ErrUnavailable, err)
	}
	defer rows.Close()

	var out []note.Notebook
	for rows.Next() {
		var nb note.Notebook
		if err := rows.Scan(&nb.ID, &nb.Name, &nb.Closed); err != nil {
			return nil, fmt.Errorf("%w: scanning notebook: %v", storage.ErrUnavailable, err)
		}
		out = append(out, nb)
	}
	return out, rows.Err()
}

// GetStorageValue reads a local-storage key.
func (s *Store) GetStorageValue(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	var val string
	err := s.db.QueryRowContext(ctx, "SELECT val FROM local_storage WHERE key = ?", key).Scan(&val)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", storage.ErrUnavailable, key, err)
	}
	return val, nil
}

// SetStorageValue writes a local-storage key.
func (s *Store) SetStorageValue(ctx context.Context, key, val string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO local_storage (key, val) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET val = excluded.val",
		key, val,
	)
	if err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrUnavailable, key, err)
	}
	return nil
}

// GetOrCreateDailyNote returns the daily note for date, inserting it when
// absent. The unique (notebook_id, date) constraint keeps concurrent
// callers on one row.
func (s *Store) GetOrCreateDailyNote(ctx context.Context, notebookID string, date time.Time) (note.DailyNote, error) {
	var savePath string
	err := s.db.QueryRowContext(ctx, "SELECT daily_note_save_path FROM notebooks WHERE id = ?", notebookID).Scan(&savePath)
	if errors.Is(err, sql.ErrNoRows) {
		return note.DailyNote{}, fmt.Errorf("%w: notebook %s", storage.ErrNotFound, notebookID)
	}
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: reading notebook: %v", storage.ErrUnavailable, err)
	}
	hpath, err := storage.RenderDailyNotePath(savePath, date)
	if err != nil {
		return note.DailyNote{}, err
	}

	id, err := note.NewID(time.Now())
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("generating daily note ID: %w", err)
	}
	label := note.DateLabel(date)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO daily_notes (id, notebook_id, date, hpath, created_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(notebook_id, date) DO NOTHING`,
		id, notebookID, label, hpath, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: inserting daily note: %v", storage.ErrUnavailable, err)
	}

	var got string
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM daily_notes WHERE notebook_id = ? AND date = ?", notebookID, label,
	).Scan(&got)
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: reading daily note: %v", storage.ErrUnavailable, err)
	}
	return note.DailyNote{ID: got, DateStr: label}, nil
}
