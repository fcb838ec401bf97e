package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	clog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, clog.DebugLevel, parseLevel("debug"))
	require.Equal(t, clog.InfoLevel, parseLevel("INFO"))
	require.Equal(t, clog.WarnLevel, parseLevel("warning"))
	require.Equal(t, clog.ErrorLevel, parseLevel("error"))
	require.Equal(t, clog.WarnLevel, parseLevel(""))
}

func TestTextOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l, closeFn, err := New(Config{Level: "info", Output: &buf})
	require.NoError(t, err)
	defer closeFn()

	l.Debug("hidden")
	l.Info("shown", "command", "today")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "shown")
	require.Contains(t, out, "command=today")
}

func TestFileOutputIsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "dailylink.log")
	l, closeFn, err := New(Config{Level: "debug", File: path})
	require.NoError(t, err)

	l.With("notebook", "nb1").Error("create failed", "date", "2024-01-01")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	require.Equal(t, "create failed", rec["msg"])
	require.Equal(t, "nb1", rec["notebook"])
	require.Equal(t, "2024-01-01", rec["date"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Info("nothing")
	require.Equal(t, l, l.With("k", "v"))
}
