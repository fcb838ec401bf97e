package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

// countLines returns the number of lines in the given string.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}
