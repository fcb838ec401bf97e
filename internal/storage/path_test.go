package storage

import (
	"errors"
	"testing"
	"time"
)

func TestRenderDailyNotePath(t *testing.T) {
	date := time.Date(2024, 1, 5, 0, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		tmpl string
		want string
	}{
		{"default", "", "/daily note/2024/01/2024-01-05"},
		{"custom", `/journal/{{now | date "2006"}}/{{now | date "Jan 2"}}`, "/journal/2024/Jan 5"},
		{"no leading slash", `daily/{{now | date "20060102"}}`, "/daily/20240105"},
		{"weekdayCN2", `/daily note/{{now | date "2006-01-02"}} 星期{{now | weekdayCN2}}`, "/daily note/2024-01-05 星期五"},
		{"weekdayCN", `/日记/周{{now | weekdayCN}}`, "/日记/周五"},
		{"sprig upper", `/{{now | date "Jan" | upper}}/{{now | date "02"}}`, "/JAN/05"},
		{"iso week", `/{{now | ISOYear}}/W{{now | ISOWeek}}`, "/2024/W1"},
		{"iso week date", `/week of {{ISOWeekDate 1 now | date "2006-01-02"}}`, "/week of 2024-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderDailyNotePath(tt.tmpl, date)
			if err != nil {
				t.Fatalf("RenderDailyNotePath: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderDailyNotePathISOYearBoundary(t *testing.T) {
	// 2021-01-01 is a Friday in ISO week 53 of 2020.
	got, err := RenderDailyNotePath(`/{{now | ISOYear}}-W{{now | ISOWeek}}-{{now | ISOMonth}}`, time.Date(2021, 1, 1, 0, 0, 0, 0, time.Local))
	if err != nil {
		t.Fatalf("RenderDailyNotePath: %v", err)
	}
	if got != "/2020-W53-12" {
		t.Errorf("got %q, want /2020-W53-12", got)
	}
}

func TestRenderDailyNotePathInvalid(t *testing.T) {
	_, err := RenderDailyNotePath("{{now | nope}}", time.Now())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}
