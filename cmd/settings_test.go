package cmd

import (
	"strings"
	"testing"

	"github.com/chris-regnier/dailylink/internal/link"
	"github.com/chris-regnier/dailylink/internal/settings"
)

func TestSettingsShowDefaults(t *testing.T) {
	setupTestEnv(t)

	out, err := runCmd(t, settingsShowCmd)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "top-left") || !strings.Contains(out, "block") {
		t.Errorf("expected defaults in output:\n%s", out)
	}
}

func TestSettingsSet(t *testing.T) {
	setupTestEnv(t)

	if _, err := runCmd(t, settingsSetCmd, "insert-format", "url"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := runCmd(t, settingsSetCmd, "position", "dock"); err != nil {
		t.Fatalf("set: %v", err)
	}
	s, err := settingsStore.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.InsertFormat != link.URL || s.Position != settings.Dock {
		t.Errorf("unexpected settings %+v", s)
	}
}

func TestSettingsSetInvalid(t *testing.T) {
	setupTestEnv(t)

	tests := [][]string{
		{"insert-format", "html"},
		{"position", "middle"},
		{"color", "red"},
	}
	for _, args := range tests {
		if _, err := runCmd(t, settingsSetCmd, args...); err == nil {
			t.Errorf("set %v: expected error", args)
		}
	}
	s, _ := settingsStore.Load()
	if s != settings.Defaults() {
		t.Errorf("invalid sets changed settings: %+v", s)
	}
}
