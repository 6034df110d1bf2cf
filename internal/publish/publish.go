package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"tasklist-cli/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteList renders v to a markdown file. A directory target gets tasks.md.
func WriteList(v model.View, to string, opt WriteOptions) (WriteResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	to = filepath.Clean(to)

	outPath := to
	if st, err := os.Stat(to); err == nil && st.IsDir() {
		outPath = filepath.Join(to, "tasks.md")
	} else if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return WriteResult{}, err
	}

	md := RenderMarkdown(v, opt.RenderOptions)
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
