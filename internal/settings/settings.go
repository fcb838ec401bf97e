// Package settings holds the user-facing preferences that dailylink
// persists: where the calendar entry point lives and how links are inserted.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/dailylink/internal/link"
)

// FileName is the settings file stored in the data directory.
const FileName = "arco-calendar-entry.json"

// Position is where the calendar entry point is shown.
type Position string

const (
	TopLeft  Position = "top-left"
	TopRight Position = "top-right"
	Dock     Position = "dock"
)

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	return p == TopLeft || p == TopRight || p == Dock
}

// Settings is an immutable snapshot of the persisted preferences.
type Settings struct {
	Position     Position          `json:"position"`
	InsertFormat link.InsertFormat `json:"insertFormat"`
}

// Defaults returns the settings used when nothing is persisted.
func Defaults() Settings {
	return Settings{Position: TopLeft, InsertFormat: link.Block}
}

// Merge overlays the valid fields of loaded onto defaults.
func Merge(defaults, loaded Settings) Settings {
	out := defaults
	if loaded.Position.Valid() {
		out.Position = loaded.Position
	}
	if loaded.InsertFormat.Valid() {
		out.InsertFormat = loaded.InsertFormat
	}
	return out
}

// With returns a copy of s with field set to value. Field names match the
// JSON keys and their kebab-case CLI spellings.
func (s Settings) With(field, value string) (Settings, error) {
	switch field {
	case "position":
		p := Position(value)
		if !p.Valid() {
			return s, fmt.Errorf("invalid position %q (want top-left, top-right or dock)", value)
		}
		s.Position = p
	case "insertFormat", "insert-format":
		f, err := link.ParseInsertFormat(value)
		if err != nil {
			return s, err
		}
		s.InsertFormat = f
	default:
		return s, fmt.Errorf("unknown setting %q", field)
	}
	return s, nil
}

// FileStore persists settings as JSON in a data directory.
type FileStore struct {
	path string
}

// NewFileStore creates a FileStore rooted at dataDir.
func NewFileStore(dataDir string) *FileStore {
	return &FileStore{path: filepath.Join(dataDir, FileName)}
}

// Path returns the settings file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the settings, merged over Defaults. On first use the defaults
// are written out.
func (f *FileStore) Load() (Settings, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		s := Defaults()
		if err := f.Save(s); err != nil {
			return s, err
		}
		return s, nil
	}
	if err != nil {
		return Defaults(), fmt.Errorf("reading settings: %w", err)
	}
	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return Defaults(), fmt.Errorf("parsing settings %s: %w", f.path, err)
	}
	return Merge(Defaults(), loaded), nil
}

// Save writes s to disk.
func (f *FileStore) Save(s Settings) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
