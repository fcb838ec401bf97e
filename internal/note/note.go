// Package note holds the host-side records dailylink works with: notebooks
// and the daily-note documents they contain.
package note

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idSuffix   = 7
	idLayout   = "20060102150405"

	// DateLayout is the label format used for daily-note dates.
	DateLayout = "2006-01-02"
)

var idPattern = regexp.MustCompile(`^\d{14}-[a-z0-9]{7}$`)

// Notebook is a top-level document collection in the host.
type Notebook struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Closed bool   `json:"closed"`
}

// DailyNote identifies the document holding the notes for one calendar day.
type DailyNote struct {
	ID      string `json:"id"`
	DateStr string `json:"dateStr"`
}

// NewID generates a block ID in the host's shape: a 14-digit timestamp,
// a dash, and 7 lowercase alphanumerics.
func NewID(now time.Time) (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, idSuffix)
	if err != nil {
		return "", err
	}
	return now.Format(idLayout) + "-" + suffix, nil
}

// ValidateID checks whether an ID matches the block ID pattern.
func ValidateID(id string) error {
	if !idPattern.MatchString(id) {
		return fmt.Errorf("invalid block ID: %q (want 14 digits, a dash and 7 lowercase alphanumerics)", id)
	}
	return nil
}

// ValidateName checks whether a notebook name is usable.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("notebook name must not be empty")
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("invalid notebook name %q: must not contain path separators", name)
	}
	return nil
}

// DateLabel returns the human-readable label for a daily note's date.
func DateLabel(date time.Time) string {
	return date.Format(DateLayout)
}

// DailyAttr returns the block attribute name and value that mark a document
// as the daily note for date.
func DailyAttr(date time.Time) (string, string) {
	v := date.Format("20060102")
	return "custom-dailynote-" + v, v
}
