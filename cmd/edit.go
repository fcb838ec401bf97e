package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/dailylink/internal/sink"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/chris-regnier/dailylink/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type editOptions struct {
	initial string
	output  outputOptions
}

var editOpts editOptions

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Write a note with the daily link slash commands",
	Long: `Open a small full-screen editor. Type /today, /tomorrow, /yesterday or
/date and press enter or tab to run the command. /date opens a calendar
next to the cursor; pick a day with the arrow keys or the mouse.

ctrl+s saves and prints the document, ctrl+c discards it.`,
	Example: `  dailylink edit
  dailylink edit --initial "Met with Ana " --clipboard`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return editRun(cmd.Context(), cmd.OutOrStdout(), editOpts)
	},
}

func init() {
	editCmd.Flags().StringVar(&editOpts.initial, "initial", "", "initial document text")
	addOutputFlags(editCmd, &editOpts.output)
	rootCmd.AddCommand(editCmd)
}

func editRun(ctx context.Context, w io.Writer, o editOptions) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the editor needs a terminal; use `dailylink today` or `dailylink date` instead")
	}

	e := ui.NewEditor(ctx, ui.EditorConfig{
		Theme:   ui.ResolveTheme(appConfig.Theme),
		Margin:  appConfig.Popover.Margin,
		Initial: o.initial,
		Now:     now,
		Logger:  logger,
	})
	e.SetDispatcher(newDispatcher(slash.WithPicker(e.Picker()), slash.WithNotifier(e)))

	text, saved, err := ui.RunEditor(e)
	if err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	if !saved {
		logger.Debug("editor closed without saving")
		return nil
	}

	var out sink.Multi
	if o.output.clipboard {
		out = append(out, sink.Clipboard{})
	}
	if o.output.appendTo != "" {
		host, ok := store.(sink.Appender)
		if !ok {
			return fmt.Errorf("--append-to requires the siyuan storage backend")
		}
		out = append(out, sink.Block{Host: host, ParentID: o.output.appendTo, Timeout: appConfig.SiYuan.Timeout})
	}
	if len(out) == 0 {
		out = append(out, sink.Writer{W: w})
	}
	return out.Insert(text)
}
