// Package day provides calendar-day arithmetic for daily notes.
// All values produced here are normalized to midnight in the local timezone,
// so two calls on the same calendar day yield equal times regardless of the
// wall-clock time in between.
package day

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO date format accepted and produced by this package.
const DateLayout = "2006-01-02"

// NormalizeDate normalizes a time.Time to midnight (00:00:00) in the local timezone.
// This ensures that all times for a given date are normalized to the same value,
// making date comparisons and lookups consistent.
//
// Example:
//
//	input:  2024-01-15 14:30:45.123456789
//	output: 2024-01-15 00:00:00.0
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// ResolveOffset returns the calendar date offsetDays days away from now's
// date. Today is offset 0. Month and year rollover come from time.Date
// normalization, not from adding 24h durations, so DST transitions cannot
// shift the result onto a neighbouring day.
func ResolveOffset(now time.Time, offsetDays int) time.Time {
	year, month, day := now.Date()
	return time.Date(year, month, day+offsetDays, 0, 0, 0, 0, time.Local)
}

// ParseDate parses a date argument which can be:
//   - "today", "yesterday", "tomorrow" (relative dates)
//   - "+N" or "-N" (relative days)
//   - "YYYY-MM-DD" (absolute date)
//
// An empty string means today.
func ParseDate(arg string, now time.Time) (time.Time, error) {
	arg = strings.TrimSpace(strings.ToLower(arg))
	switch arg {
	case "", "today":
		return ResolveOffset(now, 0), nil
	case "tomorrow":
		return ResolveOffset(now, 1), nil
	case "yesterday":
		return ResolveOffset(now, -1), nil
	}

	if arg[0] == '+' || arg[0] == '-' {
		n, err := strconv.Atoi(arg)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid day offset %q", arg)
		}
		return ResolveOffset(now, n), nil
	}

	t, err := time.ParseInLocation(DateLayout, arg, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD, today, tomorrow, yesterday or +N/-N", arg)
	}
	return t, nil
}

// MonthGrid returns the dates shown on a month calendar page, week rows
// starting on Monday. Cells outside the month are zero times.
func MonthGrid(month time.Time) [][]time.Time {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.Local)
	lead := (int(first.Weekday()) + 6) % 7
	days := time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, time.Local).Day()

	var weeks [][]time.Time
	week := make([]time.Time, 7)
	col := lead
	for d := 1; d <= days; d++ {
		week[col] = time.Date(month.Year(), month.Month(), d, 0, 0, 0, 0, time.Local)
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = make([]time.Time, 7)
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
