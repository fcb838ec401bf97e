// Package popover manages the single interactive date-picker popover.
//
// A Lifecycle owns at most one live popover. Opening a second one first
// tears down the first, so callers never see two mounted pickers or stray
// pointer listeners. The host supplies the Surface the popover attaches to,
// a Scheduler for deferred work, and the MountFunc that renders the picker.
//
// Open is two-phase. The container is attached, placed and mounted
// synchronously. Two deferred callbacks then run: the first clamps the
// popover to the viewport once its laid-out size is known, the second arms
// the outside-click listener. Deferring the listener keeps the gesture that
// opened the popover from immediately closing it.
//
// A Lifecycle is not safe for concurrent use; the host calls it from its
// single event loop.
package popover

import (
	"time"

	"github.com/chris-regnier/dailylink/internal/logging"
)

// Phase is the lifecycle state of the popover.
type Phase int

const (
	Closed Phase = iota
	Opening
	Open
)

func (p Phase) String() string {
	switch p {
	case Opening:
		return "opening"
	case Open:
		return "open"
	default:
		return "closed"
	}
}

// Surface is the document root popovers attach to.
type Surface interface {
	// Viewport returns the visible width and height.
	Viewport() (width, height int)
	Attach(c *Container)
	Detach(c *Container)
	// AddPointerListener registers fn for every pointer-down on the
	// surface and returns the func that unregisters it.
	AddPointerListener(fn func(Point)) (remove func())
}

// Scheduler runs callbacks after the event currently being handled.
type Scheduler interface {
	Defer(fn func())
}

// Handlers are the callbacks a mounted picker uses to report back.
type Handlers struct {
	// Select reports a picked date. The popover closes afterwards.
	Select func(date time.Time)
	// Dismiss asks for the popover to close without a selection.
	Dismiss func()
}

// MountFunc renders the picker into c and returns the func that unmounts
// it. The mounted UI reports its laid-out size through c.Resize.
type MountFunc func(c *Container, h Handlers) (unmount func())

// Container is the host-side element a popover is mounted into.
type Container struct {
	id     int
	bounds Rect
}

// ID identifies the container on its surface.
func (c *Container) ID() int { return c.id }

// Bounds returns the container's current box.
func (c *Container) Bounds() Rect { return c.bounds }

// MoveTo sets the container's top-left corner.
func (c *Container) MoveTo(p Point) {
	c.bounds.Left, c.bounds.Top = p.X, p.Y
}

// Resize records the container's laid-out size.
func (c *Container) Resize(w, h int) {
	c.bounds.Width, c.bounds.Height = w, h
}

type instance struct {
	c              *Container
	anchor         *Rect
	tentative      Point
	phase          Phase
	unmount        func()
	removeListener func()
}

// Lifecycle owns the popover.
type Lifecycle struct {
	surface Surface
	sched   Scheduler
	mount   MountFunc
	margin  int
	log     logging.Logger

	cur    *instance
	nextID int
}

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithMargin overrides DefaultMargin.
func WithMargin(m int) Option {
	return func(l *Lifecycle) { l.margin = m }
}

// WithLogger attaches a logger.
func WithLogger(log logging.Logger) Option {
	return func(l *Lifecycle) { l.log = log }
}

// New creates a closed Lifecycle.
func New(surface Surface, sched Scheduler, mount MountFunc, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		surface: surface,
		sched:   sched,
		mount:   mount,
		margin:  DefaultMargin,
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Phase returns the current state.
func (l *Lifecycle) Phase() Phase {
	if l.cur == nil {
		return Closed
	}
	return l.cur.phase
}

// Container returns the live container, or nil when closed.
func (l *Lifecycle) Container() *Container {
	if l.cur == nil {
		return nil
	}
	return l.cur.c
}

// Open shows a popover below anchor, or centred when anchor is nil, and
// calls onSelect when the user picks a date. Any popover already open is
// closed first.
func (l *Lifecycle) Open(anchor *Rect, onSelect func(date time.Time)) *Container {
	l.Close()

	l.nextID++
	c := &Container{id: l.nextID}
	inst := &instance{c: c, anchor: anchor, phase: Opening}
	l.cur = inst

	l.surface.Attach(c)
	vw, vh := l.surface.Viewport()
	inst.tentative = Tentative(anchor, vw, vh, l.margin)
	c.MoveTo(inst.tentative)

	inst.unmount = l.mount(c, Handlers{
		Select: func(date time.Time) {
			if l.cur != inst {
				return
			}
			if onSelect != nil {
				onSelect(date)
			}
			l.closeInstance(inst)
		},
		Dismiss: func() { l.closeInstance(inst) },
	})
	l.log.Debug("popover mounted", "id", c.id, "bounds", c.bounds)

	l.sched.Defer(func() {
		if l.cur == inst {
			l.layout(inst)
		}
	})
	l.sched.Defer(func() {
		if l.cur != inst {
			return
		}
		inst.removeListener = l.surface.AddPointerListener(func(p Point) {
			l.dismissOnOutside(inst, p)
		})
		inst.phase = Open
		l.log.Debug("popover armed", "id", c.id)
	})
	return c
}

// Relayout re-clamps the live popover, e.g. after the viewport changed.
func (l *Lifecycle) Relayout() {
	if l.cur != nil {
		l.layout(l.cur)
	}
}

// Close tears down the live popover. It is a no-op when already closed.
func (l *Lifecycle) Close() {
	if l.cur != nil {
		l.closeInstance(l.cur)
	}
}

func (l *Lifecycle) layout(inst *instance) {
	vw, vh := l.surface.Viewport()
	// Clamp from the anchored spot, not the last clamped one, so the
	// popover returns below its anchor when the viewport grows again.
	b := inst.c.Bounds()
	b.Left, b.Top = inst.tentative.X, inst.tentative.Y
	if inst.anchor == nil {
		p := Center(b.Width, b.Height, vw, vh)
		b.Left, b.Top = p.X, p.Y
	}
	b = Clamp(b, vw, vh, l.margin)
	inst.c.MoveTo(Point{X: b.Left, Y: b.Top})
}

func (l *Lifecycle) dismissOnOutside(inst *instance, p Point) {
	if !inst.c.Bounds().Contains(p) {
		l.log.Debug("popover dismissed by outside pointer", "id", inst.c.id, "x", p.X, "y", p.Y)
		l.closeInstance(inst)
	}
}

func (l *Lifecycle) closeInstance(inst *instance) {
	if l.cur != inst {
		return
	}
	l.cur = nil
	inst.phase = Closed
	if inst.removeListener != nil {
		inst.removeListener()
		inst.removeListener = nil
	}
	if inst.unmount != nil {
		inst.unmount()
		inst.unmount = nil
	}
	l.surface.Detach(inst.c)
	l.log.Debug("popover closed", "id", inst.c.id)
}
