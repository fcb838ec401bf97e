// Package daily resolves the daily-note document for a notebook and date.
package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/note"
)

// ErrCreationFailed means the host could not produce the daily note.
var ErrCreationFailed = errors.New("daily note creation failed")

// Creator is the host operation that materializes daily notes.
type Creator interface {
	GetOrCreateDailyNote(ctx context.Context, notebookID string, date time.Time) (note.DailyNote, error)
}

// Resolver obtains daily notes. Nothing is cached: idempotency is the
// host's job, so asking twice for one date returns the same document.
type Resolver struct {
	host Creator
}

// NewResolver creates a Resolver backed by host.
func NewResolver(host Creator) *Resolver {
	return &Resolver{host: host}
}

// Resolve returns the daily note for date in nb, creating it if absent.
func (r *Resolver) Resolve(ctx context.Context, nb note.Notebook, date time.Time) (note.DailyNote, error) {
	date = day.NormalizeDate(date)
	n, err := r.host.GetOrCreateDailyNote(ctx, nb.ID, date)
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: %s in notebook %s: %w", ErrCreationFailed, date.Format(day.DateLayout), nb.ID, err)
	}
	if n.DateStr == "" {
		n.DateStr = note.DateLabel(date)
	}
	return n, nil
}
