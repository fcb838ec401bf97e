package ui

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dailylink/internal/logging"
	"github.com/chris-regnier/dailylink/internal/popover"
	"github.com/chris-regnier/dailylink/internal/slash"
)

// Rows taken by the header above the textarea and the status line below.
const (
	editorHeaderRows = 1
	editorStatusRows = 1
)

// drainMsg runs the callbacks deferred while handling the previous message.
type drainMsg struct{}

// layer is a container attached to the editor surface.
type layer struct {
	c      *popover.Container
	render func() string
}

// EditorConfig holds configuration for the editor host.
type EditorConfig struct {
	Theme   Theme
	Margin  int
	Initial string
	Now     func() time.Time
	Logger  logging.Logger
}

// Editor is a small terminal document editor that hosts the slash
// commands. It is the insert sink for the commands, the surface the date
// popover attaches to, and the scheduler for the popover's deferred work.
type Editor struct {
	ctx      context.Context
	cfg      EditorConfig
	textarea textarea.Model
	picker   *popover.Lifecycle
	dispatch *slash.Dispatcher
	log      logging.Logger

	layers    []*layer
	calendar  *calendar
	listeners map[int]func(popover.Point)
	nextID    int
	deferred  []func()

	pending   []rune
	pendingOn bool
	status    string
	statusErr bool

	width, height int
	saved         bool
	aborted       bool
}

// NewEditor creates an editor host. Call SetDispatcher before running it.
func NewEditor(ctx context.Context, cfg EditorConfig) *Editor {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.Placeholder = "Type /today, /tomorrow, /yesterday or /date"
	ta.SetValue(cfg.Initial)
	ta.Focus()

	e := &Editor{
		ctx:       ctx,
		cfg:       cfg,
		textarea:  ta,
		log:       cfg.Logger,
		listeners: map[int]func(popover.Point){},
		width:     80,
		height:    24,
	}
	e.picker = popover.New(e, e, e.mountCalendar,
		popover.WithMargin(cfg.Margin),
		popover.WithLogger(cfg.Logger),
	)
	e.layout()
	return e
}

// Picker returns the popover lifecycle bound to this editor.
func (e *Editor) Picker() *popover.Lifecycle { return e.picker }

// SetDispatcher attaches the slash commands.
func (e *Editor) SetDispatcher(d *slash.Dispatcher) { e.dispatch = d }

// Value returns the document text.
func (e *Editor) Value() string { return e.textarea.Value() }

// Saved reports whether the user quit with ctrl+s.
func (e *Editor) Saved() bool { return e.saved }

// Status returns the status line text.
func (e *Editor) Status() string { return e.status }

// Insert implements slash.Sink.
func (e *Editor) Insert(text string) error {
	e.textarea.InsertString(text)
	return nil
}

// ClearInput implements slash.InputClearer by deleting the typed slash
// token, including its leading slash.
func (e *Editor) ClearInput() {
	if !e.pendingOn {
		return
	}
	for i := 0; i < len(e.pending)+1; i++ {
		e.textarea, _ = e.textarea.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	}
	e.resetPending()
}

// Error implements slash.Notifier.
func (e *Editor) Error(msg string) {
	e.status, e.statusErr = msg, true
}

// Viewport implements popover.Surface.
func (e *Editor) Viewport() (int, int) { return e.width, e.height }

// Attach implements popover.Surface.
func (e *Editor) Attach(c *popover.Container) {
	e.layers = append(e.layers, &layer{c: c})
}

// Detach implements popover.Surface.
func (e *Editor) Detach(c *popover.Container) {
	for i, l := range e.layers {
		if l.c == c {
			e.layers = append(e.layers[:i], e.layers[i+1:]...)
			return
		}
	}
}

// AddPointerListener implements popover.Surface.
func (e *Editor) AddPointerListener(fn func(popover.Point)) func() {
	e.nextID++
	id := e.nextID
	e.listeners[id] = fn
	return func() { delete(e.listeners, id) }
}

// Defer implements popover.Scheduler. Callbacks run when the next
// drainMsg arrives, after the current message has been fully handled.
func (e *Editor) Defer(fn func()) {
	e.deferred = append(e.deferred, fn)
}

func (e *Editor) mountCalendar(c *popover.Container, h popover.Handlers) func() {
	cal := newCalendar(e.cfg.Now(), e.cfg.Theme, h)
	e.calendar = cal
	for _, l := range e.layers {
		if l.c == c {
			l.render = cal.View
		}
	}
	c.Resize(cal.Size())
	return func() {
		if e.calendar == cal {
			e.calendar = nil
		}
	}
}

func (e *Editor) layout() {
	e.textarea.SetWidth(max(e.width, 1))
	e.textarea.SetHeight(max(e.height-editorHeaderRows-editorStatusRows, 1))
}

func (e *Editor) resetPending() {
	e.pending = e.pending[:0]
	e.pendingOn = false
}

// cursorRect is the screen cell under the textarea cursor.
func (e *Editor) cursorRect() *popover.Rect {
	info := e.textarea.LineInfo()
	row := min(e.textarea.Line()+info.RowOffset, e.textarea.Height()-1)
	return &popover.Rect{
		Left:   info.ColumnOffset,
		Top:    editorHeaderRows + row,
		Width:  1,
		Height: 1,
	}
}

func (e *Editor) Init() tea.Cmd {
	return textarea.Blink
}

func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case drainMsg:
		queued := e.deferred
		e.deferred = nil
		for _, fn := range queued {
			fn()
		}

	case tea.WindowSizeMsg:
		e.width, e.height = msg.Width, msg.Height
		e.layout()
		e.picker.Relayout()

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			e.pointerDown(popover.Point{X: msg.X, Y: msg.Y})
		}

	case tea.KeyMsg:
		cmd = e.handleKey(msg)

	default:
		e.textarea, cmd = e.textarea.Update(msg)
	}

	if len(e.deferred) > 0 {
		return e, tea.Batch(cmd, func() tea.Msg { return drainMsg{} })
	}
	return e, cmd
}

func (e *Editor) pointerDown(p popover.Point) {
	fns := make([]func(popover.Point), 0, len(e.listeners))
	for _, fn := range e.listeners {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(p)
	}
	if c := e.picker.Container(); c != nil && e.calendar != nil && c.Bounds().Contains(p) {
		e.calendar.Click(c.Bounds(), p)
	}
}

func (e *Editor) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		e.aborted = true
		return tea.Quit
	case "ctrl+s":
		e.saved = true
		return tea.Quit
	}

	if e.picker.Phase() != popover.Closed && e.calendar != nil {
		e.status, e.statusErr = "", false
		e.calendar.HandleKey(msg)
		return nil
	}

	switch msg.String() {
	case "esc":
		if e.pendingOn {
			e.resetPending()
			e.status = ""
			return nil
		}
		e.aborted = true
		return tea.Quit
	case "enter", "tab":
		if e.pendingOn && e.dispatch != nil {
			if matches := e.dispatch.Match(string(e.pending)); len(matches) > 0 {
				e.status, e.statusErr = "", false
				if err := e.dispatch.Invoke(e.ctx, matches[0].ID, e, e.cursorRect()); err != nil {
					e.log.Debug("slash command failed", "id", matches[0].ID, "err", err)
				}
				e.resetPending()
				return nil
			}
		}
	}

	e.trackSlash(msg)
	var cmd tea.Cmd
	e.textarea, cmd = e.textarea.Update(msg)
	return cmd
}

// trackSlash follows the "/keyword" token being typed.
func (e *Editor) trackSlash(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			switch {
			case r == '/':
				e.pending = e.pending[:0]
				e.pendingOn = true
			case e.pendingOn && !unicode.IsSpace(r):
				e.pending = append(e.pending, r)
			default:
				e.resetPending()
			}
		}
	case tea.KeyBackspace:
		if !e.pendingOn {
			return
		}
		if len(e.pending) == 0 {
			e.resetPending()
		} else {
			e.pending = e.pending[:len(e.pending)-1]
		}
	default:
		e.resetPending()
	}

	if e.pendingOn && e.dispatch != nil {
		e.status, e.statusErr = e.suggestions(), false
	} else if !e.statusErr {
		e.status = ""
	}
}

func (e *Editor) suggestions() string {
	matches := e.dispatch.Match(string(e.pending))
	if len(matches) == 0 && len(e.pending) == 0 {
		matches = e.dispatch.Commands()
	}
	hints := make([]string, len(matches))
	for i, c := range matches {
		hints[i] = c.Hint + " " + c.Label
	}
	return strings.Join(hints, "  ")
}

func (e *Editor) View() string {
	t := e.cfg.Theme
	header := t.HeaderStyle().Width(e.width).Render("dailylink  ctrl+s save  esc quit")

	statusStyle := t.HelpStyle()
	if e.statusErr {
		statusStyle = t.DangerStyle()
	}
	status := statusStyle.Width(e.width).Render(e.status)

	view := lipgloss.JoinVertical(lipgloss.Left, header, e.textarea.View(), status)
	for _, l := range e.layers {
		if l.render == nil {
			continue
		}
		b := l.c.Bounds()
		view = Overlay(view, l.render(), b.Left, b.Top)
	}
	return view
}

// RunEditor runs e full screen and returns the document and whether the
// user saved it.
func RunEditor(e *Editor) (string, bool, error) {
	p := tea.NewProgram(e, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return "", false, err
	}
	return e.Value(), e.saved, nil
}
