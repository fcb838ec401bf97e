// Package sink provides the non-interactive places a daily note link can
// be inserted into: a writer, the system clipboard and a SiYuan block.
package sink

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
)

// Writer writes each inserted text on its own line.
type Writer struct {
	W io.Writer
}

// Insert implements slash.Sink.
func (w Writer) Insert(text string) error {
	_, err := fmt.Fprintln(w.W, text)
	return err
}

// Clipboard copies inserted text to the system clipboard.
type Clipboard struct{}

// Insert implements slash.Sink.
func (Clipboard) Insert(text string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard not supported on this system")
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Appender appends markdown under a parent block.
type Appender interface {
	AppendBlock(ctx context.Context, parentID, markdown string) error
}

// Block appends inserted text as a child block of ParentID.
type Block struct {
	Host     Appender
	ParentID string
	Timeout  time.Duration
}

// Insert implements slash.Sink.
func (b Block) Insert(text string) error {
	ctx := context.Background()
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}
	if err := b.Host.AppendBlock(ctx, b.ParentID, text); err != nil {
		return fmt.Errorf("appending to block %s: %w", b.ParentID, err)
	}
	return nil
}

// Multi inserts into every sink in order and joins their errors.
type Multi []interface{ Insert(string) error }

// Insert implements slash.Sink.
func (m Multi) Insert(text string) error {
	var errs []error
	for _, s := range m {
		if err := s.Insert(text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Recorder keeps inserted text in memory. Commands that return the link
// rather than place it, such as the HTTP and MCP hosts, insert into one.
type Recorder struct {
	Texts []string
}

// Insert implements slash.Sink.
func (r *Recorder) Insert(text string) error {
	r.Texts = append(r.Texts, text)
	return nil
}

// Last returns the most recent insert, or "".
func (r *Recorder) Last() string {
	if len(r.Texts) == 0 {
		return ""
	}
	return r.Texts[len(r.Texts)-1]
}
