package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/popover"
)

// Calendar grid geometry, in cells. The frame is a rounded border plus one
// column of horizontal padding.
const (
	calendarCellWidth = 2
	calendarGap       = 1
	calendarWeeks     = 6
	calendarFrameX    = 2
	calendarFrameY    = 1
	calendarGridTop   = 2 // title and weekday header
)

var weekdayHeader = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}

// calendar is the month view mounted into the date popover.
type calendar struct {
	month    time.Time
	cursor   time.Time
	today    time.Time
	theme    Theme
	handlers popover.Handlers
}

func newCalendar(today time.Time, theme Theme, h popover.Handlers) *calendar {
	today = day.NormalizeDate(today)
	return &calendar{
		month:    firstOfMonth(today),
		cursor:   today,
		today:    today,
		theme:    theme,
		handlers: h,
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

func (c *calendar) moveDays(n int) {
	c.cursor = time.Date(c.cursor.Year(), c.cursor.Month(), c.cursor.Day()+n, 0, 0, 0, 0, time.Local)
	c.month = firstOfMonth(c.cursor)
}

// moveMonths keeps the day of month where possible, clamping to the last
// day of shorter months.
func (c *calendar) moveMonths(n int) {
	target := time.Date(c.cursor.Year(), c.cursor.Month()+time.Month(n), 1, 0, 0, 0, 0, time.Local)
	last := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()
	c.cursor = time.Date(target.Year(), target.Month(), min(c.cursor.Day(), last), 0, 0, 0, 0, time.Local)
	c.month = target
}

// HandleKey applies a key press. It returns false for keys the calendar
// does not use.
func (c *calendar) HandleKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "left", "h":
		c.moveDays(-1)
	case "right", "l":
		c.moveDays(1)
	case "up", "k":
		c.moveDays(-7)
	case "down", "j":
		c.moveDays(7)
	case "[", "pgup":
		c.moveMonths(-1)
	case "]", "pgdown":
		c.moveMonths(1)
	case "t":
		c.cursor = c.today
		c.month = firstOfMonth(c.today)
	case "enter", " ":
		c.handlers.Select(c.cursor)
	case "esc", "q":
		c.handlers.Dismiss()
	default:
		return false
	}
	return true
}

// DateAt returns the day under p for a calendar drawn at bounds.
func (c *calendar) DateAt(bounds popover.Rect, p popover.Point) (time.Time, bool) {
	lx := p.X - bounds.Left - calendarFrameX
	ly := p.Y - bounds.Top - calendarFrameY - calendarGridTop
	if lx < 0 || ly < 0 {
		return time.Time{}, false
	}
	stride := calendarCellWidth + calendarGap
	if lx%stride >= calendarCellWidth {
		return time.Time{}, false
	}
	col := lx / stride
	grid := day.MonthGrid(c.month)
	if col >= 7 || ly >= len(grid) {
		return time.Time{}, false
	}
	d := grid[ly][col]
	return d, !d.IsZero()
}

// Click selects the day under p, if any.
func (c *calendar) Click(bounds popover.Rect, p popover.Point) {
	if d, ok := c.DateAt(bounds, p); ok {
		c.cursor = d
		c.handlers.Select(d)
	}
}

func (c *calendar) View() string {
	t := c.theme
	base := lipgloss.NewStyle().Foreground(t.Primary).Background(t.Background)
	muted := base.Foreground(t.Muted)
	cursor := base.Foreground(t.Background).Background(t.Accent).Bold(true)
	today := t.AccentStyle().Underline(true)
	gap := base.Render(strings.Repeat(" ", calendarGap))
	gridWidth := 7*calendarCellWidth + 6*calendarGap

	var b strings.Builder
	title := c.month.Format("January 2006")
	b.WriteString(t.HeaderStyle().Width(gridWidth).Align(lipgloss.Center).Render(title))
	b.WriteString("\n")

	header := make([]string, len(weekdayHeader))
	for i, h := range weekdayHeader {
		header[i] = muted.Render(h)
	}
	b.WriteString(strings.Join(header, gap))

	grid := day.MonthGrid(c.month)
	for w := 0; w < calendarWeeks; w++ {
		b.WriteString("\n")
		cells := make([]string, 7)
		for i := range cells {
			var d time.Time
			if w < len(grid) {
				d = grid[w][i]
			}
			switch {
			case d.IsZero():
				cells[i] = base.Render(strings.Repeat(" ", calendarCellWidth))
			case d.Equal(c.cursor):
				cells[i] = cursor.Render(fmt.Sprintf("%2d", d.Day()))
			case d.Equal(c.today):
				cells[i] = today.Render(fmt.Sprintf("%2d", d.Day()))
			default:
				cells[i] = base.Render(fmt.Sprintf("%2d", d.Day()))
			}
		}
		b.WriteString(strings.Join(cells, gap))
	}

	return t.BorderStyle().Padding(0, 1).Render(b.String())
}

// Size returns the rendered width and height.
func (c *calendar) Size() (int, int) {
	v := c.View()
	return lipgloss.Width(v), lipgloss.Height(v)
}
