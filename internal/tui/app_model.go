package tui

import (
	"context"

	"tasklist-cli/internal/logging"
	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
	"tasklist-cli/internal/tasklist"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/log"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalAdd
	modalEdit
	modalConfirm
	modalAlert
)

// pendingConfirm is an operation waiting on the confirm modal.
type pendingConfirm struct {
	prompt string
	run    func() error
}

type appModel struct {
	ctx    context.Context
	store  store.Store
	mgr    *tasklist.Manager
	bridge *Bridge
	logger *log.Logger

	width  int
	height int

	keys keyMap
	help help.Model

	// cursor is an index into the current view rows.
	cursor int

	modal        modalKind
	input        textinput.Model
	editTaskID   string
	pending      *pendingConfirm
	confirmFocus confirmModalFocus
	alert        string

	// Move mode: the task at moveFrom is previewed at moveTo until dropped.
	moving   bool
	moveFrom int
	moveTo   int

	showHelp       bool
	minibufferText string
}

func newAppModel(ctx context.Context, s store.Store, mgr *tasklist.Manager, b *Bridge, logger *log.Logger) appModel {
	if logger == nil {
		logger = logging.Discard()
	}
	in := textinput.New()
	in.Prompt = ""
	in.Placeholder = "Add a task"
	in.CharLimit = 500

	m := appModel{
		ctx:    ctx,
		store:  s,
		mgr:    mgr,
		bridge: b,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  in,
	}
	mgr.Render()
	m.restoreState()
	return m
}

func (m appModel) rows() []model.Row {
	return m.bridge.View().Rows
}

// currentTaskID is the id under the cursor, or "" for an empty list.
func (m appModel) currentTaskID() string {
	rows := m.rows()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return ""
	}
	return rows[m.cursor].ID
}

func (m *appModel) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// followTask moves the cursor onto id, if it is still listed.
func (m *appModel) followTask(id string) {
	if id == "" {
		m.clampCursor()
		return
	}
	for i, r := range m.rows() {
		if r.ID == id {
			m.cursor = i
			return
		}
	}
	m.clampCursor()
}

func (m *appModel) restoreState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	m.showHelp = st.ShowHelp
	m.followTask(st.CursorTaskID)
}

func (m appModel) saveState() {
	st := &store.TUIState{CursorTaskID: m.currentTaskID(), ShowHelp: m.showHelp}
	if err := m.store.SaveTUIState(st); err != nil {
		m.logger.Warn("save tui state", "err", err)
	}
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
}
