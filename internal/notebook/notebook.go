// Package notebook resolves which notebook receives daily notes.
//
// The selection lives in the host's key/value storage under
// storage.DailyNoteKey; it is shared with the host and outlives any one
// dailylink process, so it is read fresh on every resolve.
package notebook

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/storage"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotConfigured means no notebook is selected, or the selected one
	// no longer exists.
	ErrNotConfigured = errors.New("daily note notebook not configured")
	// ErrStorageUnavailable means the host storage could not be read or written.
	ErrStorageUnavailable = errors.New("host storage unavailable")
)

// Source is the subset of storage.Storage the selector needs.
type Source interface {
	ListNotebooks(ctx context.Context) ([]note.Notebook, error)
	GetStorageValue(ctx context.Context, key string) (string, error)
	SetStorageValue(ctx context.Context, key, val string) error
}

// Selector reads and writes the daily-note notebook selection.
type Selector struct {
	src Source
}

// NewSelector creates a Selector over src.
func NewSelector(src Source) *Selector {
	return &Selector{src: src}
}

// Resolve returns the selected notebook.
//
// A notebook that was selected and later closed still resolves: closed
// notebooks are only hidden from Options.
func (s *Selector) Resolve(ctx context.Context) (note.Notebook, error) {
	id, err := s.SelectedID(ctx)
	if err != nil {
		return note.Notebook{}, err
	}
	if id == "" {
		return note.Notebook{}, ErrNotConfigured
	}

	notebooks, err := s.src.ListNotebooks(ctx)
	if err != nil {
		return note.Notebook{}, fmt.Errorf("%w: listing notebooks: %v", ErrStorageUnavailable, err)
	}
	for _, nb := range notebooks {
		if nb.ID == id {
			return nb, nil
		}
	}
	return note.Notebook{}, fmt.Errorf("%w: notebook %s not found", ErrNotConfigured, id)
}

// SelectedID returns the persisted selection, or "" if none.
func (s *Selector) SelectedID(ctx context.Context) (string, error) {
	id, err := s.src.GetStorageValue(ctx, storage.DailyNoteKey)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", ErrStorageUnavailable, storage.DailyNoteKey, err)
	}
	return id, nil
}

// Save persists id as the selection. An empty id is rejected the same way
// an unset selection is.
func (s *Selector) Save(ctx context.Context, id string) error {
	if id == "" {
		return ErrNotConfigured
	}
	if err := s.src.SetStorageValue(ctx, storage.DailyNoteKey, id); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrStorageUnavailable, storage.DailyNoteKey, err)
	}
	return nil
}

// Option is one entry of the notebook picker.
type Option struct {
	Notebook note.Notebook `json:"notebook"`
	Selected bool          `json:"selected"`
}

// Options returns the selectable notebooks with the current selection
// marked. The notebook list and the selection are fetched concurrently.
func (s *Selector) Options(ctx context.Context) ([]Option, error) {
	var (
		notebooks []note.Notebook
		current   string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notebooks, err = s.src.ListNotebooks(gctx)
		if err != nil {
			return fmt.Errorf("%w: listing notebooks: %v", ErrStorageUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		current, err = s.SelectedID(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	selectable := Selectable(notebooks)
	opts := make([]Option, len(selectable))
	for i, nb := range selectable {
		opts[i] = Option{Notebook: nb, Selected: nb.ID == current}
	}
	return opts, nil
}

// Selectable filters out closed notebooks.
func Selectable(notebooks []note.Notebook) []note.Notebook {
	out := make([]note.Notebook, 0, len(notebooks))
	for _, nb := range notebooks {
		if !nb.Closed {
			out = append(out, nb)
		}
	}
	return out
}
