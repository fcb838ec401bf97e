package mcptools

// InsertLinkInput is the input schema for the insert_daily_link MCP tool.
type InsertLinkInput struct {
	Command string `json:"command,omitempty" jsonschema-description:"Slash command id or keyword: today, tomorrow or yesterday"`
	Date    string `json:"date,omitempty" jsonschema-description:"Target date: today, tomorrow, yesterday, +N, -N or YYYY-MM-DD"`
}

// InsertLinkOutput is the output schema for the insert_daily_link MCP tool.
type InsertLinkOutput struct {
	Text    string `json:"text"`
	Command string `json:"command,omitempty"`
	Date    string `json:"date,omitempty"`
}

// ListNotebooksInput is the input schema for the list_notebooks MCP tool.
type ListNotebooksInput struct {
	IncludeClosed bool `json:"include_closed,omitempty" jsonschema-description:"Also list closed notebooks"`
}

// ListNotebooksOutput is the output schema for the list_notebooks MCP tool.
type ListNotebooksOutput struct {
	Notebooks []NotebookResult `json:"notebooks"`
}

// NotebookResult represents a notebook in list_notebooks output.
type NotebookResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Closed   bool   `json:"closed"`
	Selected bool   `json:"selected"`
}
