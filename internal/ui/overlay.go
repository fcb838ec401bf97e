package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Overlay draws layer over base with its top-left cell at (x, y). Styled
// text on both sides is cut on cell boundaries, so escape sequences in base
// survive around the layer.
func Overlay(base, layer string, x, y int) string {
	if layer == "" {
		return base
	}
	x, y = max(x, 0), max(y, 0)
	baseLines := strings.Split(base, "\n")
	layerLines := strings.Split(layer, "\n")

	for len(baseLines) < y+len(layerLines) {
		baseLines = append(baseLines, "")
	}

	for i, l := range layerLines {
		row := y + i
		line := baseLines[row]
		w := ansi.StringWidth(l)

		left := ansi.Truncate(line, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ""
		if ansi.StringWidth(line) > x+w {
			right = ansi.TruncateLeft(line, x+w, "")
		}
		baseLines[row] = left + ansi.ResetStyle + l + ansi.ResetStyle + right
	}
	return strings.Join(baseLines, "\n")
}
