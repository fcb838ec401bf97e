package storage

import (
	"context"
	"errors"
	"time"

	"github.com/chris-regnier/dailylink/internal/note"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("storage unavailable")
	ErrValidation  = errors.New("validation error")
	ErrUnsupported = errors.New("operation not supported by backend")
)

// DailyNoteKey is the host-side key/value entry naming the notebook that
// receives daily notes.
const DailyNoteKey = "local-dailynoteid"

// Storage is the host collaborator: the notebooks, the generic key/value
// store, and daily-note get-or-create.
type Storage interface {
	// ListNotebooks returns every notebook the host knows, closed ones included.
	ListNotebooks(ctx context.Context) ([]note.Notebook, error)

	// GetStorageValue returns the value stored under key, or "" when unset.
	GetStorageValue(ctx context.Context, key string) (string, error)
	SetStorageValue(ctx context.Context, key, val string) error

	// GetOrCreateDailyNote returns the daily note for date in the notebook,
	// creating it if absent. Repeated calls for the same date return the
	// same document.
	GetOrCreateDailyNote(ctx context.Context, notebookID string, date time.Time) (note.DailyNote, error)

	Close() error
}

// NotebookCreator is implemented by backends that manage their own notebooks.
type NotebookCreator interface {
	CreateNotebook(ctx context.Context, name string) (note.Notebook, error)
}
