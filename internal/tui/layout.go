package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// truncateLine cuts s (ANSI-aware) to at most width columns, ending with an
// ellipsis when something was dropped.
func truncateLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	// Bound the cost of StringWidth on pathological input.
	if len(s) > 8192 {
		s = xansi.Cut(s, 0, width+1)
	}
	if xansi.StringWidth(s) <= width {
		return s
	}
	if width == 1 {
		return xansi.Cut(s, 0, 1)
	}
	return xansi.Cut(s, 0, width-1) + "…"
}

// padLine right-pads s with spaces to exactly width columns.
func padLine(s string, width int) string {
	s = truncateLine(s, width)
	if w := xansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// normalizePane forces s to be exactly width columns wide and height lines tall.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = padLine(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// visibleWindow returns the [start, end) range of a list of n rows that keeps
// cursor inside a viewport of height rows.
func visibleWindow(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
