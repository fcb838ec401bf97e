package cmd

import (
	"context"
	"sync/atomic"

	"github.com/chris-regnier/dailylink/internal/link"
	"github.com/chris-regnier/dailylink/internal/mcptools"
	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/settings"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
)

var mcpServeCmd = &cobra.Command{
	Use:   "mcp-serve",
	Short: "Run MCP server on stdio",
	Long: `Starts a Model Context Protocol (MCP) server that exposes the daily
note link commands over stdio transport.

Available tools:
  - insert_daily_link: Get or create a daily note and return its link
  - list_notebooks: List notebooks and the one receiving daily notes

Example usage in an MCP client config:
  {
    "mcpServers": {
      "dailylink": {
        "command": "/path/to/dailylink",
        "args": ["mcp-serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCPServe,
}

func init() {
	rootCmd.AddCommand(mcpServeCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// The logger writes to stderr or its file; stdout is reserved for the
	// MCP protocol.
	snapshot, err := watchSettings(ctx)
	if err != nil {
		return err
	}

	server := mcptools.CreateMCPServer(mcptools.Deps{
		Dispatcher: newDispatcher(slash.WithSettings(snapshot)),
		Selector:   notebook.NewSelector(store),
		Notebooks:  store,
		Now:        now,
	})

	logger.Info("starting MCP server", "transport", "stdio", "storage", appConfig.Storage, "data_dir", appConfig.DataDir)
	return server.Run(ctx, &mcp.StdioTransport{})
}

// watchSettings loads the settings once and keeps the returned snapshot
// current as the settings file changes, until ctx is cancelled.
func watchSettings(ctx context.Context) (func() settings.Settings, error) {
	var cur atomic.Pointer[settings.Settings]
	set := func(s settings.Settings) {
		if f, err := link.ParseInsertFormat(formatOverride); formatOverride != "" && err == nil {
			s.InsertFormat = f
		}
		cur.Store(&s)
	}

	s, err := settingsStore.Load()
	if err != nil {
		logger.Warn("using default settings", "err", err)
	}
	set(s)

	err = settingsStore.Watch(ctx, func(s settings.Settings, err error) {
		if err != nil {
			logger.Warn("settings reload failed", "err", err)
			return
		}
		logger.Info("settings reloaded", "position", s.Position, "insert_format", s.InsertFormat)
		set(s)
	})
	if err != nil {
		return nil, err
	}
	return func() settings.Settings { return *cur.Load() }, nil
}
