package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputField draws a text input as one line of exactly width columns
// on the input background. Used by the add modal and the inline edit row.
func renderInputField(inputView string, width int) string {
	if width < 4 {
		width = 4
	}
	flat := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		return r
	}, inputView)

	field := padLine(" "+flat, width)
	return lipgloss.NewStyle().Background(colorInputBg).Render(field)
}

// inlineFieldWidth is what is left of a row of width w after prefix.
func inlineFieldWidth(prefix string, w int) int {
	return w - xansi.StringWidth(prefix)
}
