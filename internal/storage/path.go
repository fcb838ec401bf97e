package storage

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
)

// DefaultDailyNotePath is the save-path template used when a notebook does
// not configure one.
const DefaultDailyNotePath = `/daily note/{{now | date "2006/01"}}/{{now | date "2006-01-02"}}`

var (
	weekdaysCN  = []string{"日", "一", "二", "三", "四", "五", "六"}
	weekdaysCN2 = []string{"天", "一", "二", "三", "四", "五", "六"}
)

// isoWeekDate returns the date of weekday (0 is Sunday) in the ISO week
// containing t. ISO weeks start on Monday, so Sunday is the week's last day.
func isoWeekDate(weekday int, t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return monday.AddDate(0, 0, (weekday+6)%7)
}

// pathFuncs is the sprig function map plus the date helpers SiYuan adds
// for save-path templates, with now bound to date.
func pathFuncs(date time.Time) template.FuncMap {
	funcs := sprig.TxtFuncMap()
	funcs["now"] = func() time.Time { return date }
	funcs["weekday"] = func(t time.Time) int { return int(t.Weekday()) }
	funcs["weekdayCN"] = func(t time.Time) string { return weekdaysCN[t.Weekday()] }
	funcs["weekdayCN2"] = func(t time.Time) string { return weekdaysCN2[t.Weekday()] }
	funcs["ISOWeek"] = func(t time.Time) int {
		_, w := t.ISOWeek()
		return w
	}
	funcs["ISOYear"] = func(t time.Time) int {
		y, _ := t.ISOWeek()
		return y
	}
	funcs["ISOMonth"] = func(t time.Time) int {
		return int(isoWeekDate(4, t).Month())
	}
	funcs["ISOWeekDate"] = isoWeekDate
	funcs["parseTime"] = func(s string) time.Time {
		t, err := time.ParseInLocation("2006-01-02", s, date.Location())
		if err != nil {
			return time.Time{}
		}
		return t
	}
	return funcs
}

// RenderDailyNotePath renders a daily-note save-path template for date.
// The template sees `now` bound to date, so `{{now | date "2006/01"}}`
// expands to the target month rather than the current one.
func RenderDailyNotePath(tmpl string, date time.Time) (string, error) {
	if strings.TrimSpace(tmpl) == "" {
		tmpl = DefaultDailyNotePath
	}
	t, err := template.New("path").Funcs(pathFuncs(date)).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("%w: parsing daily note path: %v", ErrValidation, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("%w: rendering daily note path: %v", ErrValidation, err)
	}
	path := buf.String()
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path, nil
}
