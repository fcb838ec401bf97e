package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Deps are the collaborators the tools run against.
type Deps struct {
	Dispatcher *slash.Dispatcher
	Selector   *notebook.Selector
	Notebooks  notebook.Source
	Now        func() time.Time
}

// NewInMemoryServer creates an MCP server connected to an in-memory
// transport. Returns the server and the client side of the transport.
func NewInMemoryServer(deps Deps) (*mcp.Server, mcp.Transport) {
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	server := CreateMCPServer(deps)

	go func() {
		_, _ = server.Connect(context.Background(), serverTransport, nil)
	}()

	return server, clientTransport
}

// CreateMCPServer creates an MCP server with the daily link tools registered.
func CreateMCPServer(deps Deps) *mcp.Server {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "dailylink",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "insert_daily_link",
		Description: "Get or create the daily note for a slash command or date and return the formatted link",
	}, InsertLinkHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_notebooks",
		Description: "List notebooks and which one receives daily notes",
	}, ListNotebooksHandler(deps))

	return server
}
