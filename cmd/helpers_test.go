package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/chris-regnier/dailylink/internal/config"
	"github.com/chris-regnier/dailylink/internal/logging"
	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/settings"
	"github.com/chris-regnier/dailylink/internal/storage"
	"github.com/chris-regnier/dailylink/internal/storage/markdown"
	"github.com/spf13/cobra"
)

var testNow = time.Date(2024, 3, 9, 15, 4, 5, 0, time.Local)

func setupTestStore(t *testing.T) *markdown.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// setupTestEnv points the package globals at a fresh markdown store and a
// fixed clock.
func setupTestEnv(t *testing.T) *markdown.Store {
	t.Helper()
	s := setupTestStore(t)
	store = s
	appConfig = &config.Config{
		Storage: config.StorageMarkdown,
		DataDir: t.TempDir(),
		Lang:    "en",
	}
	settingsStore = settings.NewFileStore(appConfig.DataDir)
	logger = logging.Nop()
	now = func() time.Time { return testNow }
	jsonOutput = false
	formatOverride = ""
	notebooksAll = false
	t.Cleanup(func() { now = time.Now })
	return s
}

// selectNotebook creates a notebook and makes it the daily note notebook.
func selectNotebook(t *testing.T, s *markdown.Store, name string) note.Notebook {
	t.Helper()
	ctx := context.Background()
	nb, err := s.CreateNotebook(ctx, name)
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if err := s.SetStorageValue(ctx, storage.DailyNoteKey, nb.ID); err != nil {
		t.Fatalf("SetStorageValue: %v", err)
	}
	return nb
}

// runCmd calls c's RunE with captured output.
func runCmd(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetContext(context.Background())
	err := c.RunE(c, args)
	return out.String(), err
}
