package tui

import (
	"fmt"
	"strings"

	"tasklist-cli/internal/docs"
	"tasklist-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}

	switch m.modal {
	case modalAdd:
		return m.placeModal(w, h, renderInputModal(w, "New task", m.input.View()))
	case modalConfirm:
		prompt := ""
		if m.pending != nil {
			prompt = m.pending.prompt
		}
		return m.placeModal(w, h, renderConfirmModal(w, "Confirm", prompt, "Delete", "Cancel", m.confirmFocus))
	case modalAlert:
		return m.placeModal(w, h, renderAlertModal(w, m.alert))
	}

	v := m.bridge.View()
	header := styleHeader().Render("To-Do List")
	footer := m.renderCounts(v)

	var bottom []string
	if m.minibufferText != "" {
		bottom = append(bottom, styleMuted().Render(m.minibufferText))
	}
	switch {
	case m.modal == modalEdit:
		bottom = append(bottom, styleMuted().Render("edit: enter/tab save   esc: cancel"))
	case m.moving:
		bottom = append(bottom, styleMuted().Render("move: ↑/↓ carry   enter: drop   esc: cancel"))
	default:
		bottom = append(bottom, m.help.View(m.keys))
	}

	var helpPane string
	if m.showHelp {
		if md, ok := docs.Get("keys"); ok {
			helpPane = renderMarkdown(md, min(w-2, 80))
		}
	}

	// header, blank, footer, blank, bottom lines
	listH := h - 4 - len(bottom)
	if helpPane != "" {
		listH -= lipgloss.Height(helpPane) + 1
	}
	if listH < 1 {
		listH = 1
	}

	parts := []string{header, "", m.renderRows(v.Rows, w, listH), footer}
	if helpPane != "" {
		parts = append(parts, "", helpPane)
	}
	parts = append(parts, "")
	parts = append(parts, bottom...)
	return strings.Join(parts, "\n")
}

func (m appModel) placeModal(w, h int, modal string) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}

func (m appModel) renderRows(rows []model.Row, w, h int) string {
	if len(rows) == 0 {
		return normalizePane(styleMuted().Render("No tasks yet. Press a to add one."), w, h)
	}

	cursor := m.cursor
	if m.moving {
		rows = movePreview(rows, m.moveFrom, m.moveTo)
		cursor = m.moveTo
	}

	start, end := visibleWindow(len(rows), cursor, h)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(rows[i], i == cursor, w))
	}
	return normalizePane(strings.Join(lines, "\n"), w, h)
}

func (m appModel) renderRow(r model.Row, focused bool, w int) string {
	lead := "  "
	if focused {
		lead = glyphCursor() + " "
		if m.moving {
			lead = glyphMoving() + " "
		}
	}

	box := glyphCheckbox(r.Selected)
	if r.Selected {
		box = styleSelectedMark().Render(box)
	}

	done := " "
	text := r.Text
	if r.Completed {
		done = glyphCompleted()
		text = styleCompletedText().Render(text)
	}
	if m.modal == modalEdit && r.ID == m.editTaskID {
		prefix := fmt.Sprintf("%s%s %s ", lead, box, done)
		return prefix + renderInputField(m.input.View(), inlineFieldWidth(prefix, w))
	}

	line := fmt.Sprintf("%s%s %s %s", lead, box, done, text)
	line = padLine(line, w)
	switch {
	case focused && m.moving:
		return styleMovingRow().Render(line)
	case focused:
		return styleCursorRow().Render(line)
	}
	return line
}

func (m appModel) renderCounts(v model.View) string {
	return styleMuted().Render(fmt.Sprintf(
		"Total: %d   Completed: %d   Deleted: %d   Edited: %d",
		v.Total, v.Completed, v.Deleted, v.Edited,
	))
}
