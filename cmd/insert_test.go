package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/chris-regnier/dailylink/internal/ui"
)

func TestInsertRunOffsets(t *testing.T) {
	tests := []struct {
		id     string
		offset int
		want   string
	}{
		{slash.IDToday, 0, "2024-03-09"},
		{slash.IDTomorrow, 1, "2024-03-10"},
		{slash.IDYesterday, -1, "2024-03-08"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s := setupTestEnv(t)
			selectNotebook(t, s, "Journal")

			var out, errOut bytes.Buffer
			err := insertRun(context.Background(), &out, &errOut, offsetTarget(tt.id, tt.offset), outputOptions{})
			if err != nil {
				t.Fatalf("insertRun: %v (stderr %q)", err, errOut.String())
			}
			got := strings.TrimSpace(out.String())
			if !strings.HasPrefix(got, "((") || !strings.Contains(got, `"`+tt.want+`"`) {
				t.Errorf("link = %q, want block ref labelled %s", got, tt.want)
			}
		})
	}
}

func TestInsertRunReusesDailyNote(t *testing.T) {
	s := setupTestEnv(t)
	selectNotebook(t, s, "Journal")

	var first, second bytes.Buffer
	if err := insertRun(context.Background(), &first, &bytes.Buffer{}, offsetTarget(slash.IDToday, 0), outputOptions{}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if err := insertRun(context.Background(), &second, &bytes.Buffer{}, dateTarget("2024-03-09"), outputOptions{}); err != nil {
		t.Fatalf("second insert: %v", err)
	}
	if first.String() != second.String() {
		t.Errorf("links differ: %q vs %q", first.String(), second.String())
	}
}

func TestInsertRunFormatOverride(t *testing.T) {
	s := setupTestEnv(t)
	selectNotebook(t, s, "Journal")
	formatOverride = "url"

	var out bytes.Buffer
	if err := insertRun(context.Background(), &out, &bytes.Buffer{}, dateTarget("+3"), outputOptions{}); err != nil {
		t.Fatalf("insertRun: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if !strings.HasPrefix(got, "[2024-03-12](siyuan://blocks/") {
		t.Errorf("link = %q, want url link for 2024-03-12", got)
	}
}

func TestInsertRunJSON(t *testing.T) {
	s := setupTestEnv(t)
	selectNotebook(t, s, "Journal")
	jsonOutput = true

	var out bytes.Buffer
	if err := insertRun(context.Background(), &out, &bytes.Buffer{}, offsetTarget(slash.IDTomorrow, 1), outputOptions{}); err != nil {
		t.Fatalf("insertRun: %v", err)
	}
	var res ui.LinkResult
	if err := json.Unmarshal(out.Bytes(), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if res.Date != "2024-03-10" || res.Command != slash.IDTomorrow || res.Text == "" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestInsertRunNotebookNotConfigured(t *testing.T) {
	setupTestEnv(t)

	var out, errOut bytes.Buffer
	err := insertRun(context.Background(), &out, &errOut, offsetTarget(slash.IDToday, 0), outputOptions{})
	if !errors.Is(err, ErrReported) {
		t.Fatalf("expected ErrReported, got %v", err)
	}
	if !errors.Is(err, notebook.ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured in chain, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on failure, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "select a daily note notebook") {
		t.Errorf("stderr = %q, want friendly message", errOut.String())
	}
}

func TestInsertRunInvalidDate(t *testing.T) {
	s := setupTestEnv(t)
	selectNotebook(t, s, "Journal")

	err := insertRun(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, dateTarget("2024-02-30"), outputOptions{})
	if err == nil {
		t.Fatal("expected error for invalid date")
	}
	if errors.Is(err, ErrReported) {
		t.Error("parse errors are not reported by the dispatcher")
	}
}

func TestInsertRunAppendNeedsSiYuan(t *testing.T) {
	s := setupTestEnv(t)
	selectNotebook(t, s, "Journal")

	err := insertRun(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, offsetTarget(slash.IDToday, 0), outputOptions{appendTo: "20240101120000-abcdefg"})
	if err == nil || !strings.Contains(err.Error(), "siyuan") {
		t.Errorf("expected siyuan backend error, got %v", err)
	}
}
