package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/dailylink/internal/config"
	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/notebook"
)

func pickerOptions() []notebook.Option {
	return []notebook.Option{
		{Notebook: note.Notebook{ID: "20240101000000-aaaaaaa", Name: "Journal"}},
		{Notebook: note.Notebook{ID: "20240101000000-bbbbbbb", Name: "Work"}, Selected: true},
	}
}

func TestNotebookPickerStartsOnSelected(t *testing.T) {
	m := newNotebookPicker(pickerOptions(), ResolveTheme(config.ThemeConfig{}))
	it, ok := m.list.SelectedItem().(notebookItem)
	if !ok || it.nb.Name != "Work" {
		t.Fatalf("cursor on %+v, want Work", m.list.SelectedItem())
	}
	if !strings.Contains(stripANSI(m.View()), "Work *") {
		t.Errorf("selected notebook not marked:\n%s", stripANSI(m.View()))
	}
}

func TestNotebookPickerEnterChooses(t *testing.T) {
	m := newNotebookPicker(pickerOptions(), ResolveTheme(config.ThemeConfig{}))
	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	res, cmd := res.(notebookPicker).Update(tea.KeyMsg{Type: tea.KeyEnter})
	got := res.(notebookPicker)
	if got.chosen == nil || got.chosen.Name != "Journal" {
		t.Fatalf("chosen = %+v, want Journal", got.chosen)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestNotebookPickerEscCancels(t *testing.T) {
	m := newNotebookPicker(pickerOptions(), ResolveTheme(config.ThemeConfig{}))
	res, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if res.(notebookPicker).chosen != nil {
		t.Error("esc should not choose a notebook")
	}
}
