package mcptools

import (
	"context"

	"github.com/chris-regnier/dailylink/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListNotebooksHandler returns the handler function for the list_notebooks MCP tool.
func ListNotebooksHandler(deps Deps) func(ctx context.Context, req *mcp.CallToolRequest, input ListNotebooksInput) (*mcp.CallToolResult, ListNotebooksOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListNotebooksInput) (*mcp.CallToolResult, ListNotebooksOutput, error) {
		if input.IncludeClosed {
			all, err := deps.Notebooks.ListNotebooks(ctx)
			if err != nil {
				return nil, ListNotebooksOutput{}, err
			}
			current, err := deps.Selector.SelectedID(ctx)
			if err != nil {
				return nil, ListNotebooksOutput{}, err
			}
			results := make([]NotebookResult, len(all))
			for i, nb := range all {
				results[i] = NotebookResult{ID: nb.ID, Name: nb.Name, Closed: nb.Closed, Selected: nb.ID == current}
			}
			return nil, ListNotebooksOutput{Notebooks: results}, nil
		}

		opts, err := deps.Selector.Options(ctx)
		if err != nil {
			return nil, ListNotebooksOutput{}, err
		}
		return nil, ListNotebooksOutput{Notebooks: toResults(opts)}, nil
	}
}

func toResults(opts []notebook.Option) []NotebookResult {
	results := make([]NotebookResult, len(opts))
	for i, o := range opts {
		results[i] = NotebookResult{
			ID:       o.Notebook.ID,
			Name:     o.Notebook.Name,
			Closed:   o.Notebook.Closed,
			Selected: o.Selected,
		}
	}
	return results
}
