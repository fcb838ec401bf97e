package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/sink"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InsertLinkHandler returns the handler function for the insert_daily_link MCP tool.
func InsertLinkHandler(deps Deps) func(ctx context.Context, req *mcp.CallToolRequest, input InsertLinkInput) (*mcp.CallToolResult, InsertLinkOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input InsertLinkInput) (*mcp.CallToolResult, InsertLinkOutput, error) {
		switch {
		case input.Command != "" && input.Date != "":
			return nil, InsertLinkOutput{}, errors.New("set either command or date, not both")

		case input.Command != "":
			id, err := resolveCommand(deps.Dispatcher, input.Command)
			if err != nil {
				return nil, InsertLinkOutput{}, err
			}
			rec := &sink.Recorder{}
			if err := deps.Dispatcher.Invoke(ctx, id, rec, nil); err != nil {
				return nil, InsertLinkOutput{}, err
			}
			return nil, InsertLinkOutput{Text: rec.Last(), Command: id}, nil

		default:
			arg := input.Date
			if arg == "" {
				arg = "today"
			}
			date, err := day.ParseDate(arg, deps.Now())
			if err != nil {
				return nil, InsertLinkOutput{}, err
			}
			text, err := deps.Dispatcher.Link(ctx, date)
			if err != nil {
				return nil, InsertLinkOutput{}, err
			}
			return nil, InsertLinkOutput{Text: text, Date: date.Format(day.DateLayout)}, nil
		}
	}
}

// resolveCommand accepts a command id or a filter keyword. The popover
// command is refused: there is no surface to show it on.
func resolveCommand(d *slash.Dispatcher, command string) (string, error) {
	id := command
	if _, ok := d.Lookup(id); !ok {
		matches := d.Match(command)
		if len(matches) == 0 {
			return "", fmt.Errorf("%w: %s", slash.ErrUnknownCommand, command)
		}
		id = matches[0].ID
	}
	if id == slash.IDPick {
		return "", fmt.Errorf("%w: use the date argument instead", slash.ErrNoPicker)
	}
	return id, nil
}
