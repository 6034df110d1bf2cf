package tasklist

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tasklist-cli/internal/model"
)

// newCollator returns a collator for the BCP 47 tag, falling back to English
// when the tag does not parse.
func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}

// sortTasks orders tasks by text using c. Equal texts keep their relative order.
func sortTasks(tasks []model.Task, c *collate.Collator, descending bool) {
	slices.SortStableFunc(tasks, func(a, b model.Task) int {
		if descending {
			return c.CompareString(b.Text, a.Text)
		}
		return c.CompareString(a.Text, b.Text)
	})
}
