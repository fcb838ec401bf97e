package ui

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/settings"
	"github.com/gosuri/uitable"
)

// FormatJSON writes any value as JSON to the writer.
func FormatJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// FormatNotebookTable writes notebooks as a table, marking the daily-note
// selection with "*".
func FormatNotebookTable(w io.Writer, opts []notebook.Option) {
	if len(opts) == 0 {
		fmt.Fprintln(w, "No notebooks found.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("", "ID", "NAME", "STATE")
	for _, o := range opts {
		mark := ""
		if o.Selected {
			mark = "*"
		}
		state := "open"
		if o.Notebook.Closed {
			state = "closed"
		}
		tbl.AddRow(mark, o.Notebook.ID, o.Notebook.Name, state)
	}
	fmt.Fprintln(w, tbl)
}

// NotebookJSON is the JSON representation of a notebook option.
type NotebookJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Closed   bool   `json:"closed"`
	Selected bool   `json:"selected"`
}

// ToNotebookJSON converts options for JSON output.
func ToNotebookJSON(opts []notebook.Option) []NotebookJSON {
	out := make([]NotebookJSON, len(opts))
	for i, o := range opts {
		out[i] = NotebookJSON{ID: o.Notebook.ID, Name: o.Notebook.Name, Closed: o.Notebook.Closed, Selected: o.Selected}
	}
	return out
}

// FormatNotebookCreated formats a creation confirmation message.
func FormatNotebookCreated(w io.Writer, nb note.Notebook) {
	fmt.Fprintf(w, "Created notebook %s (%s)\n", nb.Name, nb.ID)
}

// FormatNotebookSelected formats a selection confirmation message.
func FormatNotebookSelected(w io.Writer, nb note.Notebook) {
	fmt.Fprintf(w, "Daily notes go to %s (%s)\n", nb.Name, nb.ID)
}

// FormatSettings writes the settings as a two-column table.
func FormatSettings(w io.Writer, s settings.Settings) {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("position", string(s.Position))
	tbl.AddRow("insert-format", string(s.InsertFormat))
	fmt.Fprintln(w, tbl)
}

// LinkResult is the JSON representation of an inserted link.
type LinkResult struct {
	Date    string `json:"date"`
	Command string `json:"command,omitempty"`
	Text    string `json:"text"`
}
