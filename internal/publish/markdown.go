package publish

import (
	"bytes"
	"fmt"
	"strings"

	"tasklist-cli/internal/model"
)

type RenderOptions struct {
	// Title heads the document; defaults to "To-Do List".
	Title string
	// OpenOnly drops completed tasks.
	OpenOnly bool
	// IncludeCounts appends the counters section.
	IncludeCounts bool
}

// RenderMarkdown renders the list as a GitHub-style checklist. Completed
// tasks are checked and struck through; selected tasks carry a marker.
func RenderMarkdown(v model.View, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	title := strings.TrimSpace(opt.Title)
	if title == "" {
		title = "To-Do List"
	}
	writeLn("# " + title)
	writeLn("")

	n := 0
	for _, r := range v.Rows {
		if opt.OpenOnly && r.Completed {
			continue
		}
		renderTaskLine(&buf, r)
		n++
	}
	if n == 0 {
		writeLn("_No tasks._")
	}

	if opt.IncludeCounts {
		writeLn("")
		writeLn("## Counts")
		writeLn("")
		writeLn(fmt.Sprintf("- Total: %d", v.Total))
		writeLn(fmt.Sprintf("- Completed: %d", v.Completed))
		writeLn(fmt.Sprintf("- Deleted: %d", v.Deleted))
		writeLn(fmt.Sprintf("- Edited: %d", v.Edited))
	}
	return buf.String()
}

func renderTaskLine(buf *bytes.Buffer, r model.Row) {
	box := " "
	text := escapeInline(strings.TrimSpace(r.Text))
	if r.Completed {
		box = "x"
		text = "~~" + text + "~~"
	}
	mark := ""
	if r.Selected {
		mark = " _(selected)_"
	}
	fmt.Fprintf(buf, "- [%s] %s%s\n", box, text, mark)
}

// escapeInline keeps task text from being read as markdown structure.
func escapeInline(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		"*", `\*`,
		"_", `\_`,
		"~", `\~`,
		"`", "\\`",
		"[", `\[`,
		"]", `\]`,
		"\n", " ",
	)
	return r.Replace(s)
}
