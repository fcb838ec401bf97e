// Package markdown is an offline host backend that keeps notebooks as
// directories of Markdown files with YAML front-matter.
//
// Layout under the data directory:
//
//	notebooks/<id>/notebook.yaml        notebook metadata
//	notebooks/<id>/<hpath>.md           documents, daily notes included
//	local-storage/<key>                 host key/value storage (diskv)
package markdown

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/storage"
	"github.com/peterbourgon/diskv/v3"
	"gopkg.in/yaml.v3"
)

const notebookFile = "notebook.yaml"

// Store implements storage.Storage on the local filesystem.
type Store struct {
	notebooksDir string
	kv           *diskv.Diskv

	// mu serializes get-or-create so concurrent requests for one date
	// agree on a single document.
	mu sync.Mutex
}

// New creates a Markdown backend rooted at dataDir.
func New(dataDir string) (*Store, error) {
	notebooksDir := filepath.Join(dataDir, "notebooks")
	if err := os.MkdirAll(notebooksDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating notebooks directory: %v", storage.ErrUnavailable, err)
	}
	kv := diskv.New(diskv.Options{
		BasePath:     filepath.Join(dataDir, "local-storage"),
		Transform:    func(string) []string { return []string{} },
		CacheSizeMax: 64 * 1024,
	})
	return &Store{notebooksDir: notebooksDir, kv: kv}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

type notebookMeta struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Closed            bool   `yaml:"closed"`
	DailyNoteSavePath string `yaml:"daily_note_save_path,omitempty"`
}

type dailyFrontMatter struct {
	ID      string `yaml:"id"`
	Title   string `yaml:"title"`
	Created string `yaml:"created"`
}

func (s *Store) readNotebook(id string) (notebookMeta, error) {
	var meta notebookMeta
	data, err := os.ReadFile(filepath.Join(s.notebooksDir, id, notebookFile))
	if errors.Is(err, fs.ErrNotExist) {
		return meta, fmt.Errorf("%w: notebook %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return meta, fmt.Errorf("%w: reading notebook %s: %v", storage.ErrUnavailable, id, err)
	}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return meta, fmt.Errorf("%w: parsing notebook %s: %v", storage.ErrUnavailable, id, err)
	}
	if meta.ID == "" {
		meta.ID = id
	}
	return meta, nil
}

func (s *Store) writeNotebook(meta notebookMeta) error {
	dir := filepath.Join(s.notebooksDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating notebook directory: %v", storage.ErrUnavailable, err)
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, notebookFile), data, 0644); err != nil {
		return fmt.Errorf("%w: writing notebook %s: %v", storage.ErrUnavailable, meta.ID, err)
	}
	return nil
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
	meta := notebookMeta{ID: id, Name: name}
	if err := s.writeNotebook(meta); err != nil {
		return note.Notebook{}, err
	}
	return note.Notebook{ID: id, Name: name}, nil
}

// SetClosed opens or closes a notebook.
func (s *Store) SetClosed(ctx context.Context, id string, closed bool) error {
	meta, err := s.readNotebook(id)
	if err != nil {
		return err
	}
	meta.Closed = closed
	return s.writeNotebook(meta)
}

// ListNotebooks returns all notebooks sorted by name.
func (s *Store) ListNotebooks(ctx context.Context) ([]note.Notebook, error) {
	dirs, err := os.ReadDir(s.notebooksDir)
	if err != nil {
		return nil, fmt.Errorf("%w: listing notebooks: %v", storage.ErrUnavailable, err)
	}
	var out []note.Notebook
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		meta, err := s.readNotebook(d.Name())
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, note.Notebook{ID: meta.ID, Name: meta.Name, Closed: meta.Closed})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetStorageValue reads a local-storage key.
func (s *Store) GetStorageValue(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	val, err := s.kv.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", storage.ErrUnavailable, key, err)
	}
	return string(val), nil
}

// SetStorageValue writes a local-storage key.
func (s *Store) SetStorageValue(ctx context.Context, key, val string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", storage.ErrValidation)
	}
	if err := s.kv.Write(key, []byte(val)); err != nil {
		return fmt.Errorf("%w: writing %s: %v", storage.ErrUnavailable, key, err)
	}
	return nil
}

// GetOrCreateDailyNote returns the daily note document for date, creating
// it at the notebook's daily-note save path if absent.
func (s *Store) GetOrCreateDailyNote(ctx context.Context, notebookID string, date time.Time) (note.DailyNote, error) {
	meta, err := s.readNotebook(notebookID)
	if err != nil {
		return note.DailyNote{}, err
	}
	hpath, err := storage.RenderDailyNotePath(meta.DailyNoteSavePath, date)
	if err != nil {
		return note.DailyNote{}, err
	}
	path := filepath.Join(s.notebooksDir, notebookID, filepath.FromSlash(strings.TrimPrefix(hpath, "/"))+".md")
	label := note.DateLabel(date)

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(path)
	if err == nil {
		var fm dailyFrontMatter
		if _, err := frontmatter.Parse(bytes.NewReader(data), &fm); err != nil {
			return note.DailyNote{}, fmt.Errorf("%w: parsing front-matter of %s: %v", storage.ErrUnavailable, path, err)
		}
		if fm.ID == "" {
			return note.DailyNote{}, fmt.Errorf("%w: %s has no id", storage.ErrUnavailable, path)
		}
		return note.DailyNote{ID: fm.ID, DateStr: label}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return note.DailyNote{}, fmt.Errorf("%w: reading %s: %v", storage.ErrUnavailable, path, err)
	}

	id, err := note.NewID(time.Now())
	if err != nil {
		return note.DailyNote{}, fmt.Errorf("generating daily note ID: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: creating daily note directory: %v", storage.ErrUnavailable, err)
	}
	if err := os.WriteFile(path, marshalDaily(id, date), 0644); err != nil {
		return note.DailyNote{}, fmt.Errorf("%w: writing %s: %v", storage.ErrUnavailable, path, err)
	}
	return note.DailyNote{ID: id, DateStr: label}, nil
}

func marshalDaily(id string, date time.Time) []byte {
	attr, val := note.DailyAttr(date)
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", id)
	fmt.Fprintf(&b, "title: %q\n", note.DateLabel(date))
	fmt.Fprintf(&b, "created: %s\n", time.Now().UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s: %q\n", attr, val)
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n", note.DateLabel(date))
	return []byte(b.String())
}
