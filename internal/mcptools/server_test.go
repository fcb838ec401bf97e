package mcptools_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/dailylink/internal/daily"
	"github.com/chris-regnier/dailylink/internal/link"
	"github.com/chris-regnier/dailylink/internal/mcptools"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/settings"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/chris-regnier/dailylink/internal/storage"
	"github.com/chris-regnier/dailylink/internal/storage/markdown"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

var fixedNow = time.Date(2024, 3, 9, 10, 0, 0, 0, time.Local)

func setupSession(t *testing.T, selectNotebook bool) (*mcp.ClientSession, *markdown.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := markdown.New(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	journal, err := store.CreateNotebook(ctx, "Journal")
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	archive, err := store.CreateNotebook(ctx, "Archive")
	if err != nil {
		t.Fatalf("CreateNotebook: %v", err)
	}
	if err := store.SetClosed(ctx, archive.ID, true); err != nil {
		t.Fatalf("SetClosed: %v", err)
	}
	if selectNotebook {
		if err := store.SetStorageValue(ctx, storage.DailyNoteKey, journal.ID); err != nil {
			t.Fatalf("SetStorageValue: %v", err)
		}
	}

	now := func() time.Time { return fixedNow }
	sel := notebook.NewSelector(store)
	d := slash.New(sel, daily.NewResolver(store),
		slash.WithClock(now),
		slash.WithSettings(func() settings.Settings {
			return settings.Settings{Position: settings.TopLeft, InsertFormat: link.URL}
		}),
	)

	_, clientTransport := mcptools.NewInMemoryServer(mcptools.Deps{
		Dispatcher: d,
		Selector:   sel,
		Notebooks:  store,
		Now:        now,
	})
	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("failed to connect client: %v", err)
	}
	t.Cleanup(func() { session.Close() })
	return session, store
}

// decode reads the structured output of a tool result, falling back to the
// JSON text content.
func decode(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	if result.StructuredContent != nil {
		outputJSON, _ := json.Marshal(result.StructuredContent)
		if err := json.Unmarshal(outputJSON, out); err != nil {
			t.Fatalf("failed to unmarshal structured content: %v", err)
		}
		return
	}
	if len(result.Content) == 0 {
		t.Fatal("expected content in result")
	}
	text, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("unexpected content type %T", result.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), out); err != nil {
		t.Fatalf("failed to unmarshal output: %v", err)
	}
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args any) *mcp.CallToolResult {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	return result
}

func TestMCPServer_InsertDailyLinkCommand(t *testing.T) {
	session, _ := setupSession(t, true)

	result := callTool(t, session, "insert_daily_link", mcptools.InsertLinkInput{Command: "tomorrow"})
	if result.IsError {
		t.Fatalf("tool returned error: %+v", result.Content)
	}
	var output mcptools.InsertLinkOutput
	decode(t, result, &output)

	if !strings.HasPrefix(output.Text, "[2024-03-10](siyuan://blocks/") {
		t.Errorf("unexpected link %q", output.Text)
	}
	if output.Command != slash.IDTomorrow {
		t.Errorf("expected command %s, got %s", slash.IDTomorrow, output.Command)
	}
}

func TestMCPServer_InsertDailyLinkDate(t *testing.T) {
	session, _ := setupSession(t, true)

	first := callTool(t, session, "insert_daily_link", mcptools.InsertLinkInput{Date: "2024-02-29"})
	second := callTool(t, session, "insert_daily_link", mcptools.InsertLinkInput{Date: "2024-02-29"})

	var a, b mcptools.InsertLinkOutput
	decode(t, first, &a)
	decode(t, second, &b)
	if a.Date != "2024-02-29" {
		t.Errorf("expected date 2024-02-29, got %q", a.Date)
	}
	if a.Text == "" || a.Text != b.Text {
		t.Errorf("expected the same daily note twice, got %q and %q", a.Text, b.Text)
	}
}

func TestMCPServer_InsertDailyLinkErrors(t *testing.T) {
	tests := []struct {
		name     string
		selected bool
		input    mcptools.InsertLinkInput
	}{
		{"picker command", true, mcptools.InsertLinkInput{Command: "date"}},
		{"unknown command", true, mcptools.InsertLinkInput{Command: "someday"}},
		{"both arguments", true, mcptools.InsertLinkInput{Command: "today", Date: "today"}},
		{"bad date", true, mcptools.InsertLinkInput{Date: "soon"}},
		{"no notebook", false, mcptools.InsertLinkInput{Command: "today"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, _ := setupSession(t, tt.selected)
			result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
				Name:      "insert_daily_link",
				Arguments: tt.input,
			})
			if err == nil && !result.IsError {
				t.Errorf("expected a tool error")
			}
		})
	}
}

func TestMCPServer_ListNotebooks(t *testing.T) {
	session, _ := setupSession(t, true)

	var output mcptools.ListNotebooksOutput
	decode(t, callTool(t, session, "list_notebooks", mcptools.ListNotebooksInput{}), &output)
	if len(output.Notebooks) != 1 {
		t.Fatalf("expected 1 open notebook, got %d", len(output.Notebooks))
	}
	if output.Notebooks[0].Name != "Journal" || !output.Notebooks[0].Selected {
		t.Errorf("unexpected notebook %+v", output.Notebooks[0])
	}

	var all mcptools.ListNotebooksOutput
	decode(t, callTool(t, session, "list_notebooks", mcptools.ListNotebooksInput{IncludeClosed: true}), &all)
	if len(all.Notebooks) != 2 {
		t.Fatalf("expected 2 notebooks, got %d", len(all.Notebooks))
	}
	if all.Notebooks[0].Name != "Archive" || !all.Notebooks[0].Closed {
		t.Errorf("unexpected closed notebook %+v", all.Notebooks[0])
	}
}
