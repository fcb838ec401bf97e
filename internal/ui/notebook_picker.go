package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/dailylink/internal/note"
	"github.com/chris-regnier/dailylink/internal/notebook"
)

type notebookItem struct {
	nb       note.Notebook
	selected bool
}

func (i notebookItem) Title() string {
	if i.selected {
		return i.nb.Name + " *"
	}
	return i.nb.Name
}

func (i notebookItem) Description() string { return i.nb.ID }
func (i notebookItem) FilterValue() string { return i.nb.Name }

// notebookPicker lists the selectable notebooks with the current one
// highlighted.
type notebookPicker struct {
	list   list.Model
	chosen *note.Notebook
}

func newNotebookPicker(opts []notebook.Option, theme Theme) notebookPicker {
	items := make([]list.Item, len(opts))
	cursor := 0
	for i, o := range opts {
		items[i] = notebookItem{nb: o.Notebook, selected: o.Selected}
		if o.Selected {
			cursor = i
		}
	}
	l := theme.NewList(items, 60, 14)
	l.Title = "Daily note notebook"
	l.SetShowStatusBar(false)
	l.Select(cursor)
	return notebookPicker{list: l}
}

func (m notebookPicker) Init() tea.Cmd { return nil }

func (m notebookPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(notebookItem); ok {
				nb := it.nb
				m.chosen = &nb
			}
			return m, tea.Quit
		case "esc", "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m notebookPicker) View() string { return m.list.View() }

// PickNotebook shows the notebooks in a list and returns the one chosen.
// ok is false when the user cancelled.
func PickNotebook(opts []notebook.Option, theme Theme) (nb note.Notebook, ok bool, err error) {
	res, err := tea.NewProgram(newNotebookPicker(opts, theme)).Run()
	if err != nil {
		return note.Notebook{}, false, err
	}
	m := res.(notebookPicker)
	if m.chosen == nil {
		return note.Notebook{}, false, nil
	}
	return *m.chosen, true, nil
}
