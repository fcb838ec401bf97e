package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/chris-regnier/dailylink/internal/day"
	"github.com/chris-regnier/dailylink/internal/sink"
	"github.com/chris-regnier/dailylink/internal/slash"
	"github.com/chris-regnier/dailylink/internal/storage/siyuan"
	"github.com/chris-regnier/dailylink/internal/ui"
	"github.com/spf13/cobra"
)

// outputOptions are the flags shared by the commands that insert a link.
type outputOptions struct {
	clipboard bool
	appendTo  string
	notify    bool
	preview   bool
}

func addOutputFlags(c *cobra.Command, o *outputOptions) {
	c.Flags().BoolVar(&o.clipboard, "clipboard", false, "copy the link to the clipboard")
	c.Flags().StringVar(&o.appendTo, "append-to", "", "append the link under this SiYuan block ID")
	c.Flags().BoolVar(&o.notify, "notify", false, "show failures in SiYuan as well")
	c.Flags().BoolVar(&o.preview, "preview", false, "render the link as markdown")
}

// insertTarget is what a command inserts: a slash command by ID, or an
// explicit date.
type insertTarget struct {
	command string
	date    func() (time.Time, error)
}

func offsetTarget(id string, offset int) insertTarget {
	return insertTarget{
		command: id,
		date:    func() (time.Time, error) { return day.ResolveOffset(now(), offset), nil },
	}
}

func dateTarget(arg string) insertTarget {
	return insertTarget{
		date: func() (time.Time, error) { return day.ParseDate(arg, now()) },
	}
}

// cliNotifier prints user-facing failures and optionally pushes them to
// SiYuan.
type cliNotifier struct {
	w      io.Writer
	pusher *siyuan.Client
}

func (n cliNotifier) Error(msg string) {
	fmt.Fprintln(n.w, "Error:", msg)
	if n.pusher != nil {
		if err := n.pusher.PushErrMsg(context.Background(), msg, 7*time.Second); err != nil {
			logger.Warn("pushing error to siyuan failed", "err", err)
		}
	}
}

func buildSinks(w io.Writer, rec *sink.Recorder, o outputOptions) (sink.Multi, error) {
	sinks := sink.Multi{rec}
	if o.clipboard {
		sinks = append(sinks, sink.Clipboard{})
	}
	if o.appendTo != "" {
		host, ok := store.(sink.Appender)
		if !ok {
			return nil, fmt.Errorf("--append-to requires the siyuan storage backend")
		}
		sinks = append(sinks, sink.Block{Host: host, ParentID: o.appendTo, Timeout: appConfig.SiYuan.Timeout})
	}
	if !jsonOutput && !o.preview && !o.clipboard && o.appendTo == "" {
		sinks = append(sinks, sink.Writer{W: w})
	}
	return sinks, nil
}

func insertRun(ctx context.Context, w, errW io.Writer, target insertTarget, o outputOptions) error {
	date, err := target.date()
	if err != nil {
		return err
	}

	rec := &sink.Recorder{}
	sinks, err := buildSinks(w, rec, o)
	if err != nil {
		return err
	}
	notifier := cliNotifier{w: errW}
	if o.notify {
		if c, ok := store.(*siyuan.Client); ok {
			notifier.pusher = c
		}
	}
	d := newDispatcher(slash.WithNotifier(notifier))

	if target.command != "" {
		err = d.Invoke(ctx, target.command, sinks, nil)
	} else {
		err = d.InsertDate(ctx, sinks, date)
	}
	if err != nil {
		// The dispatcher already reported the failure through the notifier.
		return fmt.Errorf("%w: %w", ErrReported, err)
	}

	text := rec.Last()
	switch {
	case jsonOutput:
		return ui.FormatJSON(w, ui.LinkResult{
			Date:    date.Format(day.DateLayout),
			Command: target.command,
			Text:    text,
		})
	case o.preview:
		fmt.Fprintln(w, ui.PreviewLink(text, 80, ui.ResolveTheme(appConfig.Theme).MarkdownStyle))
	}
	return nil
}
