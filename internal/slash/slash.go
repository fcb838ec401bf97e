// Package slash implements the date slash commands: /date, /today,
// /tomorrow and /yesterday. Each one resolves the daily-note notebook,
// obtains the daily note for the target date, formats a link according to
// the user's insert format and inserts it into the invoking surface.
package slash

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chris-regnier/dailylink/internal/daily"
	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/link"
	"github.com/chris-regnier/dailylink/internal/logging"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/popover"
	"github.com/chris-regnier/dailylink/internal/settings"
)

// Command IDs.
const (
	IDPick      = "arco-date-picker"
	IDToday     = "arco-date-picker-today"
	IDTomorrow  = "arco-date-picker-tomorrow"
	IDYesterday = "arco-date-picker-yesterday"
)

var (
	ErrUnknownCommand = errors.New("unknown slash command")
	ErrNoPicker       = errors.New("date picker not available")
	ErrInsertFailed   = errors.New("insert failed")
)

// Sink is the editable surface a command inserts into.
type Sink interface {
	Insert(text string) error
}

// InputClearer is implemented by sinks that hold the text typed to trigger
// a command, so it can be removed before inserting.
type InputClearer interface {
	ClearInput()
}

// Notifier is the user-facing message channel.
type Notifier interface {
	Error(msg string)
}

// NotifierFunc adapts a func to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Error(msg string) { f(msg) }

// Callback runs a command against sink. anchor locates the invoking
// element for commands that open a popover; it may be nil.
type Callback func(ctx context.Context, sink Sink, anchor *popover.Rect) error

// Command is one registered slash command.
type Command struct {
	ID       string
	Filter   []string
	Label    string
	Hint     string
	Callback Callback
}

// Dispatcher owns the four slash commands.
type Dispatcher struct {
	selector *notebook.Selector
	resolver *daily.Resolver
	picker   *popover.Lifecycle
	settings func() settings.Settings
	notify   Notifier
	msgs     Messages
	now      func() time.Time
	log      logging.Logger

	commands []Command
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPicker enables the explicit-pick command.
func WithPicker(l *popover.Lifecycle) Option {
	return func(d *Dispatcher) { d.picker = l }
}

// WithSettings supplies the current settings snapshot on every insert.
func WithSettings(fn func() settings.Settings) Option {
	return func(d *Dispatcher) { d.settings = fn }
}

// WithNotifier routes user-facing failures to n.
func WithNotifier(n Notifier) Option {
	return func(d *Dispatcher) { d.notify = n }
}

// WithLang selects the message catalog.
func WithLang(lang string) Option {
	return func(d *Dispatcher) { d.msgs = MessagesFor(lang) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) { d.now = now }
}

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(d *Dispatcher) { d.log = log }
}

// New creates a Dispatcher and registers its commands.
func New(selector *notebook.Selector, resolver *daily.Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		selector: selector,
		resolver: resolver,
		settings: settings.Defaults,
		notify:   NotifierFunc(func(string) {}),
		msgs:     MessagesFor("en"),
		now:      time.Now,
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.commands = []Command{
		{
			ID:     IDPick,
			Filter: []string{"date", "日期", "riqi"},
			Label:  d.msgs.DateLabel,
			Hint:   "/date",
			Callback: func(ctx context.Context, sink Sink, anchor *popover.Rect) error {
				return d.OpenPicker(ctx, sink, anchor)
			},
		},
		d.offsetCommand(IDToday, []string{"today", "今天"}, d.msgs.TodayLabel, "/today", 0),
		d.offsetCommand(IDTomorrow, []string{"tomorrow", "明天"}, d.msgs.TomorrowLabel, "/tomorrow", 1),
		d.offsetCommand(IDYesterday, []string{"yesterday", "昨天"}, d.msgs.YesterdayLabel, "/yesterday", -1),
	}
	return d
}

func (d *Dispatcher) offsetCommand(id string, filter []string, label, hint string, offset int) Command {
	return Command{
		ID:     id,
		Filter: filter,
		Label:  label,
		Hint:   hint,
		Callback: func(ctx context.Context, sink Sink, _ *popover.Rect) error {
			return d.InsertWithOffset(ctx, sink, offset)
		},
	}
}

// Commands returns the registered commands.
func (d *Dispatcher) Commands() []Command {
	out := make([]Command, len(d.commands))
	copy(out, d.commands)
	return out
}

// Lookup finds a command by ID.
func (d *Dispatcher) Lookup(id string) (Command, bool) {
	for _, c := range d.commands {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Match returns the commands whose filter keywords start with token.
// A leading slash is ignored and matching is case-insensitive.
func (d *Dispatcher) Match(token string) []Command {
	token = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(token), "/"))
	if token == "" {
		return nil
	}
	var out []Command
	for _, c := range d.commands {
		for _, kw := range c.Filter {
			if strings.HasPrefix(strings.ToLower(kw), token) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Invoke runs the command with the given ID.
func (d *Dispatcher) Invoke(ctx context.Context, id string, sink Sink, anchor *popover.Rect) error {
	c, ok := d.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, id)
	}
	d.log.Debug("slash command invoked", "id", id)
	return c.Callback(ctx, sink, anchor)
}

// InsertWithOffset inserts a link to the daily note offset days from today.
func (d *Dispatcher) InsertWithOffset(ctx context.Context, sink Sink, offset int) error {
	clearInput(sink)
	return d.InsertDate(ctx, sink, day.ResolveOffset(d.now(), offset))
}

// OpenPicker opens the date-picker popover anchored at anchor. The link is
// inserted once the user picks a date.
func (d *Dispatcher) OpenPicker(ctx context.Context, sink Sink, anchor *popover.Rect) error {
	clearInput(sink)
	if d.picker == nil {
		d.notify.Error(d.msgs.NoPicker)
		return ErrNoPicker
	}
	d.picker.Open(anchor, func(date time.Time) {
		// Failures were already reported through the notifier.
		_ = d.InsertDate(ctx, sink, date)
	})
	return nil
}

// InsertDate resolves the notebook and daily note for date and inserts the
// formatted link. Nothing is inserted when any step fails.
func (d *Dispatcher) InsertDate(ctx context.Context, sink Sink, date time.Time) error {
	text, err := d.Link(ctx, date)
	if err != nil {
		return err
	}
	if err := sink.Insert(text); err != nil {
		d.log.Error("insert failed", "err", err)
		d.notify.Error(d.msgs.InsertFailed)
		return fmt.Errorf("%w: %w", ErrInsertFailed, err)
	}
	d.log.Info("inserted daily note link", "date", date.Format(day.DateLayout))
	return nil
}

// Link resolves the daily note for date and returns the formatted link
// without inserting it.
func (d *Dispatcher) Link(ctx context.Context, date time.Time) (string, error) {
	nb, err := d.selector.Resolve(ctx)
	if err != nil {
		d.fail(err)
		return "", err
	}
	n, err := d.resolver.Resolve(ctx, nb, date)
	if err != nil {
		d.fail(err)
		return "", err
	}
	return link.Format(n, d.settings().InsertFormat), nil
}

func (d *Dispatcher) fail(err error) {
	d.log.Warn("daily note link aborted", "err", err)
	switch {
	case errors.Is(err, notebook.ErrNotConfigured):
		d.notify.Error(d.msgs.NotNotebook)
	case errors.Is(err, notebook.ErrStorageUnavailable):
		d.notify.Error(d.msgs.StorageUnavailable)
	default:
		d.notify.Error(d.msgs.CreationFailed)
	}
}

func clearInput(sink Sink) {
	if c, ok := sink.(InputClearer); ok {
		c.ClearInput()
	}
}
