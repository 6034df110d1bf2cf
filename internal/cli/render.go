package cli

import (
	"fmt"
	"io"
	"strings"

	"tasklist-cli/internal/model"

	"github.com/spf13/cobra"
)

func writeView(cmd *cobra.Command, app *App, v model.View) error {
	if app.Format == "text" {
		return renderText(cmd.OutOrStdout(), v)
	}
	return writeOut(cmd, app, map[string]any{"data": v})
}

// renderText prints one line per task followed by the counts line.
func renderText(w io.Writer, v model.View) error {
	var b strings.Builder
	for _, r := range v.Rows {
		b.WriteString(renderTextRow(r))
		b.WriteByte('\n')
	}
	if len(v.Rows) == 0 {
		b.WriteString("(no tasks)\n")
	}
	b.WriteString(renderTextCounts(v))
	b.WriteByte('\n')
	_, err := io.WriteString(w, b.String())
	return err
}

func renderTextRow(r model.Row) string {
	sel := "[ ]"
	if r.Selected {
		sel = "[x]"
	}
	done := " "
	if r.Completed {
		done = "✔"
	}
	return fmt.Sprintf("%3d %s %s %s", r.Index+1, sel, done, r.Text)
}

func renderTextCounts(v model.View) string {
	return fmt.Sprintf("total: %d  completed: %d  deleted: %d  edited: %d", v.Total, v.Completed, v.Deleted, v.Edited)
}
