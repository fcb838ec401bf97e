// Package link renders daily-note references for insertion into a document.
package link

import (
	"fmt"

	"github.com/chris-regnier/dailylink/internal/note"
)

// InsertFormat selects how a daily-note reference is rendered.
type InsertFormat string

const (
	// Block renders a block reference: ((id "label")).
	Block InsertFormat = "block"
	// URL renders a markdown hyperlink using the siyuan:// scheme.
	URL InsertFormat = "url"
)

// Scheme is the URI prefix used by URL-format links.
const Scheme = "siyuan://blocks/"

// Formats lists the supported insert formats in display order.
var Formats = []InsertFormat{Block, URL}

// Valid reports whether f is a known format.
func (f InsertFormat) Valid() bool {
	return f == Block || f == URL
}

// ParseInsertFormat converts a string to an InsertFormat.
func ParseInsertFormat(s string) (InsertFormat, error) {
	f := InsertFormat(s)
	if !f.Valid() {
		return Block, fmt.Errorf("unknown insert format %q (want block or url)", s)
	}
	return f, nil
}

// Format renders n in the given format. The date label is emitted verbatim;
// quotes or brackets in it are not escaped.
func Format(n note.DailyNote, f InsertFormat) string {
	if f == URL {
		return "[" + n.DateStr + "](" + Scheme + n.ID + ")"
	}
	return "((" + n.ID + " \"" + n.DateStr + "\"))"
}
