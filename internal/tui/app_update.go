package tui

import (
	"errors"
	"slices"

	"tasklist-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.saveState()
			return m, tea.Quit
		}
		switch m.modal {
		case modalAdd, modalEdit:
			return m.updateInput(msg)
		case modalConfirm:
			return m.updateConfirm(msg), nil
		case modalAlert:
			return m.updateAlert(msg), nil
		}
		if m.moving {
			return m.updateMove(msg), nil
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.minibufferText = ""
	id := m.currentTaskID()
	n := len(m.rows())

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.saveState()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case msg.String() == "esc":
		m.showHelp = false

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < n-1 {
			m.cursor++
		}
		return m, nil

	case msg.String() == "home" || msg.String() == "g":
		m.cursor = 0
		return m, nil

	case msg.String() == "end" || msg.String() == "G":
		m.cursor = max(n-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.openInput(modalAdd, "", "")
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if n == 0 {
			return m, nil
		}
		m.openInput(modalEdit, id, m.rows()[m.cursor].Text)
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if n > 0 {
			m.apply(m.mgr.ToggleSelect(m.ctx, m.cursor))
		}

	case key.Matches(msg, m.keys.Complete):
		if n > 0 {
			m.apply(m.mgr.ToggleComplete(m.ctx, m.cursor))
		}

	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return m, nil
		}
		idx := m.cursor
		m.askThen(
			func() error { return m.mgr.DeleteTask(m.ctx, idx) },
			func() error {
				i := m.mgr.IndexOf(id)
				if i < 0 {
					return tasklist.ErrIndexOutOfRange
				}
				return m.mgr.DeleteTask(m.ctx, i)
			},
		)
		return m, nil

	case key.Matches(msg, m.keys.DeleteMarked):
		m.askThen(
			func() error { return m.mgr.DeleteSelected(m.ctx) },
			func() error { return m.mgr.DeleteSelected(m.ctx) },
		)
		return m, nil

	case key.Matches(msg, m.keys.SortAsc):
		m.apply(m.mgr.SortAscending(m.ctx))

	case key.Matches(msg, m.keys.SortDesc):
		m.apply(m.mgr.SortDescending(m.ctx))

	case key.Matches(msg, m.keys.Reset):
		m.apply(m.mgr.ResetOrder(m.ctx))

	case key.Matches(msg, m.keys.Move):
		if n > 1 {
			m.moving = true
			m.moveFrom, m.moveTo = m.cursor, m.cursor
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveUp):
		if m.cursor > 0 {
			m.apply(m.mgr.Reorder(m.ctx, m.cursor, m.cursor-1))
		}

	case key.Matches(msg, m.keys.MoveDown):
		if m.cursor < n-1 {
			m.apply(m.mgr.Reorder(m.ctx, m.cursor, m.cursor+1))
		}

	default:
		return m, nil
	}

	m.followTask(id)
	return m, nil
}

func (m *appModel) openInput(kind modalKind, taskID, text string) {
	m.modal = kind
	m.editTaskID = taskID
	m.input.SetValue(text)
	m.input.CursorEnd()
	if kind == modalAdd {
		m.input.Placeholder = "Add a task"
	} else {
		m.input.Placeholder = "Task text"
	}
	m.input.Focus()
}

func (m *appModel) closeInput() {
	m.modal = modalNone
	m.editTaskID = ""
	m.input.Blur()
	m.input.SetValue("")
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+g":
		m.closeInput()
		return m, nil

	case "enter", "tab":
		text := m.input.Value()
		if m.modal == modalAdd {
			err := m.mgr.AddTask(m.ctx, text)
			if m.showPendingAlert(modalAdd) {
				return m, nil
			}
			if errors.Is(err, tasklist.ErrEmptyInput) {
				return m, nil
			}
			m.closeInput()
			m.apply(err)
			if err == nil {
				m.cursor = len(m.rows()) - 1
			}
			return m, nil
		}

		id := m.editTaskID
		idx := m.mgr.IndexOf(id)
		if idx < 0 {
			m.closeInput()
			return m, nil
		}
		err := m.mgr.EditTask(m.ctx, idx, text)
		if m.showPendingAlert(modalEdit) {
			return m, nil
		}
		m.closeInput()
		if !errors.Is(err, tasklist.ErrEmptyInput) {
			m.apply(err)
		}
		m.followTask(id)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// askThen runs op once without consent. When op stops at a confirmation
// the prompt is shown, and confirming runs retry with consent.
func (m *appModel) askThen(op, retry func() error) {
	prompt, err := m.bridge.ask(op)
	if errors.Is(err, tasklist.ErrCancelled) && prompt != "" {
		m.pending = &pendingConfirm{prompt: prompt, run: retry}
		m.confirmFocus = confirmFocusConfirm
		m.modal = modalConfirm
		return
	}
	m.apply(err)
}

func (m appModel) updateConfirm(msg tea.KeyMsg) appModel {
	run := false
	switch msg.String() {
	case "y", "Y":
		run = true
	case "n", "N", "esc", "ctrl+g", "q":
	case "tab", "shift+tab", "left", "right", "h", "l":
		m.confirmFocus = m.confirmFocus.toggle()
		return m
	case "enter":
		run = m.confirmFocus == confirmFocusConfirm
	default:
		return m
	}

	p := m.pending
	m.pending = nil
	m.modal = modalNone
	if p == nil {
		return m
	}
	if !run {
		m.showMinibuffer("Cancelled")
		return m
	}
	id := m.currentTaskID()
	m.apply(m.bridge.confirmed(p.run))
	m.followTask(id)
	return m
}

func (m appModel) updateAlert(msg tea.KeyMsg) appModel {
	switch msg.String() {
	case "enter", "esc", " ", "q", "ctrl+g":
	default:
		return m
	}
	if next, ok := m.bridge.takeAlert(); ok {
		m.alert = next
		return m
	}
	m.alert = ""
	m.modal = modalNone
	if m.editTaskID != "" {
		m.modal = modalEdit
	} else if m.input.Focused() {
		m.modal = modalAdd
	}
	return m
}

// showPendingAlert opens the alert modal when the manager raised one. The
// input modal stays open underneath so the text can be corrected.
func (m *appModel) showPendingAlert(from modalKind) bool {
	msg, ok := m.bridge.takeAlert()
	if !ok {
		return false
	}
	if from != modalAdd && from != modalEdit {
		m.closeInput()
	}
	m.alert = msg
	m.modal = modalAlert
	return true
}

func (m appModel) updateMove(msg tea.KeyMsg) appModel {
	n := len(m.rows())
	switch {
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.MoveUp):
		if m.moveTo > 0 {
			m.moveTo--
		}
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.MoveDown):
		if m.moveTo < n-1 {
			m.moveTo++
		}
	case msg.String() == "enter", key.Matches(msg, m.keys.Move):
		m.moving = false
		id := ""
		if m.moveFrom < n {
			id = m.rows()[m.moveFrom].ID
		}
		m.apply(m.mgr.Reorder(m.ctx, m.moveFrom, m.moveTo))
		m.followTask(id)
	case msg.String() == "esc":
		m.moving = false
		m.cursor = m.moveFrom
	}
	return m
}

// apply reports the outcome of a manager call.
func (m *appModel) apply(err error) {
	if m.showPendingAlert(modalNone) {
		return
	}
	switch {
	case err == nil, errors.Is(err, tasklist.ErrCancelled):
	default:
		m.logger.Error("operation failed", "err", err)
		m.showMinibuffer("Error: " + err.Error())
	}
	m.clampCursor()
}

// movePreview is rows in the order move mode is currently showing.
func movePreview[T any](rows []T, from, to int) []T {
	if from < 0 || from >= len(rows) || to < 0 || to >= len(rows) || from == to {
		return rows
	}
	out := slices.Clone(rows)
	it := out[from]
	out = slices.Delete(out, from, from+1)
	return slices.Insert(out, to, it)
}
