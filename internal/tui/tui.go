package tui

import (
	"context"

	"tasklist-cli/internal/store"
	"tasklist-cli/internal/tasklist"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

// Run starts the interactive list. mgr must have been built with b.Options().
func Run(ctx context.Context, s store.Store, mgr *tasklist.Manager, b *Bridge, cfg store.Config, logger *log.Logger) error {
	applyColorProfilePreference()
	applyThemePreference()
	if cfg.TUI != nil {
		applyGlyphPreference(cfg.TUI.Glyphs)
	} else {
		applyGlyphPreference("")
	}

	m := newAppModel(ctx, s, mgr, b, logger)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
