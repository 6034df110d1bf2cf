package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
)

func TestRenderInputField_FixedWidthSingleLine(t *testing.T) {
	tests := []struct {
		name  string
		view  string
		width int
		want  int
	}{
		{name: "short value padded", view: "milk", width: 20, want: 20},
		{name: "long value cut", view: strings.Repeat("x", 50), width: 12, want: 12},
		{name: "tiny width clamped", view: "milk", width: 1, want: 4},
		{name: "newlines flattened", view: "a\nb\rc", width: 10, want: 10},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := renderInputField(tc.view, tc.width)
			if strings.ContainsAny(got, "\n\r") {
				t.Fatalf("expected one line, got %q", got)
			}
			if w := xansi.StringWidth(got); w != tc.want {
				t.Fatalf("width=%d want %d (%q)", w, tc.want, got)
			}
		})
	}
}
