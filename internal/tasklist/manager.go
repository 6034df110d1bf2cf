// Package tasklist owns the ordered task list, its order snapshot and the
// deleted/edited counters. Every successful mutation is written to the store
// and followed by a render.
package tasklist

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/collate"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
)

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// Alerter shows the user a blocking message.
type Alerter interface {
	Alert(msg string)
}

// Renderer receives the full list projection after every mutation.
type Renderer interface {
	Render(v model.View)
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type AlertFunc func(msg string)

func (f AlertFunc) Alert(msg string) { f(msg) }

type RenderFunc func(v model.View)

func (f RenderFunc) Render(v model.View) { f(v) }

// Manager is not safe for concurrent use; callers run one operation at a time.
type Manager struct {
	kv store.KV

	tasks    []model.Task
	snapshot []model.Task
	counters model.Counters

	confirm  Confirmer
	alert    Alerter
	render   Renderer
	logger   *log.Logger
	collator *collate.Collator
	newID    func() string
}

type Option func(*Manager)

func WithConfirmer(c Confirmer) Option { return func(m *Manager) { m.confirm = c } }
func WithAlerter(a Alerter) Option     { return func(m *Manager) { m.alert = a } }
func WithRenderer(r Renderer) Option   { return func(m *Manager) { m.render = r } }

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithLocale sets the BCP 47 locale used by the sort operations.
func WithLocale(locale string) Option {
	return func(m *Manager) { m.collator = newCollator(locale) }
}

func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// New loads the list and counters from kv. Missing keys give an empty list and
// zero counters. Without a Confirmer every confirmation is declined.
func New(ctx context.Context, kv store.KV, opts ...Option) (*Manager, error) {
	if kv == nil {
		return nil, errors.New("tasklist: nil store")
	}
	m := &Manager{
		kv:       kv,
		confirm:  ConfirmFunc(func(string) bool { return false }),
		alert:    AlertFunc(func(string) {}),
		render:   RenderFunc(func(model.View) {}),
		logger:   log.New(io.Discard),
		collator: newCollator(store.DefaultLocale),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}

	st, err := loadState(ctx, kv)
	if err != nil {
		return nil, fmt.Errorf("load task list: %w", err)
	}
	tasks := st.tasks
	for i := range tasks {
		if strings.TrimSpace(tasks[i].ID) == "" {
			tasks[i].ID = m.newID()
		}
	}
	m.tasks = tasks
	m.snapshot = orderSnapshot(tasks, st.order)
	m.counters = st.counters
	m.logger.Debug("task list loaded", "tasks", len(tasks), "deleted", st.counters.Deleted, "edited", st.counters.Edited)
	return m, nil
}

// Len returns the number of tasks.
func (m *Manager) Len() int { return len(m.tasks) }

// Tasks returns a copy of the current list.
func (m *Manager) Tasks() []model.Task { return model.CloneTasks(m.tasks) }

// Snapshot returns a copy of the order snapshot.
func (m *Manager) Snapshot() []model.Task { return model.CloneTasks(m.snapshot) }

func (m *Manager) Counters() model.Counters { return m.counters }

// IndexOf resolves a task id to its current index, or -1.
func (m *Manager) IndexOf(id string) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// View projects the current state.
func (m *Manager) View() model.View {
	v := model.View{
		Rows:    make([]model.Row, 0, len(m.tasks)),
		Total:   len(m.tasks),
		Deleted: m.counters.Deleted,
		Edited:  m.counters.Edited,
	}
	for i, t := range m.tasks {
		if t.Completed {
			v.Completed++
		}
		v.Rows = append(v.Rows, model.Row{
			Index:     i,
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  t.Selected,
		})
	}
	return v
}

// Render pushes the current view to the renderer.
func (m *Manager) Render() {
	m.render.Render(m.View())
}

func (m *Manager) AddTask(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return m.reject(ErrEmptyInput, msgEmptyTask)
	}
	if m.findText(text, -1) >= 0 {
		return m.reject(ErrDuplicateText, msgDuplicateTask)
	}

	prev := m.save()
	m.tasks = append(m.tasks, model.Task{ID: m.newID(), Text: text})
	m.snapshot = model.CloneTasks(m.tasks)
	return m.commit(ctx, prev, "task added", "index", len(m.tasks)-1, "text", text)
}

// EditTask replaces the text at index. Blank text is ignored without an alert.
func (m *Manager) EditTask(ctx context.Context, index int, newText string) error {
	if !m.inRange(index) {
		return ErrIndexOutOfRange
	}
	newText = strings.TrimSpace(newText)
	if newText == "" {
		return ErrEmptyInput
	}
	if m.findText(newText, index) >= 0 {
		return m.reject(ErrDuplicateText, msgDuplicateTask)
	}

	prev := m.save()
	m.tasks[index].Text = newText
	m.counters.Edited++
	return m.commit(ctx, prev, "task edited", "index", index, "text", newText)
}

func (m *Manager) ToggleComplete(ctx context.Context, index int) error {
	if !m.inRange(index) {
		return ErrIndexOutOfRange
	}
	prev := m.save()
	m.tasks[index].Completed = !m.tasks[index].Completed
	return m.commit(ctx, prev, "task completion toggled", "index", index, "completed", m.tasks[index].Completed)
}

func (m *Manager) ToggleSelect(ctx context.Context, index int) error {
	if !m.inRange(index) {
		return ErrIndexOutOfRange
	}
	prev := m.save()
	m.tasks[index].Selected = !m.tasks[index].Selected
	return m.commit(ctx, prev, "task selection toggled", "index", index, "selected", m.tasks[index].Selected)
}

// DeleteTask removes the task at index after the user confirms.
func (m *Manager) DeleteTask(ctx context.Context, index int) error {
	if !m.inRange(index) {
		return ErrIndexOutOfRange
	}
	if !m.confirm.Confirm(msgConfirmDelete) {
		m.logger.Debug("delete declined", "index", index)
		return ErrCancelled
	}

	prev := m.save()
	removed := m.tasks[index]
	m.tasks = append(m.tasks[:index:index], m.tasks[index+1:]...)
	m.snapshot = model.CloneTasks(m.tasks)
	m.counters.Deleted++
	return m.commit(ctx, prev, "task deleted", "index", index, "text", removed.Text)
}

// DeleteSelected removes every selected task after one confirmation. The
// deleted counter moves by one per bulk delete, not per task.
func (m *Manager) DeleteSelected(ctx context.Context) error {
	n := 0
	for _, t := range m.tasks {
		if t.Selected {
			n++
		}
	}
	if n == 0 {
		return m.reject(ErrNoSelection, msgNoSelection)
	}
	if !m.confirm.Confirm(fmt.Sprintf(msgConfirmBulkFmt, n)) {
		m.logger.Debug("bulk delete declined", "selected", n)
		return ErrCancelled
	}

	prev := m.save()
	kept := make([]model.Task, 0, len(m.tasks)-n)
	for _, t := range m.tasks {
		if !t.Selected {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	m.snapshot = model.CloneTasks(m.tasks)
	m.counters.Deleted++
	return m.commit(ctx, prev, "selected tasks deleted", "count", n)
}

// SortAscending and SortDescending leave the order snapshot alone so
// ResetOrder can undo them.
func (m *Manager) SortAscending(ctx context.Context) error {
	return m.sort(ctx, false)
}

func (m *Manager) SortDescending(ctx context.Context) error {
	return m.sort(ctx, true)
}

func (m *Manager) sort(ctx context.Context, descending bool) error {
	prev := m.save()
	sortTasks(m.tasks, m.collator, descending)
	return m.commit(ctx, prev, "tasks sorted", "descending", descending)
}

// ResetOrder restores the snapshot order. Each task keeps its current text and
// flags; tasks missing from the snapshot follow in their current order.
func (m *Manager) ResetOrder(ctx context.Context) error {
	prev := m.save()

	current := make(map[string]model.Task, len(m.tasks))
	for _, t := range m.tasks {
		current[t.ID] = t
	}
	out := make([]model.Task, 0, len(m.tasks))
	for _, s := range m.snapshot {
		if t, ok := current[s.ID]; ok {
			out = append(out, t)
			delete(current, s.ID)
		}
	}
	for _, t := range m.tasks {
		if _, ok := current[t.ID]; ok {
			out = append(out, t)
		}
	}
	m.tasks = out
	return m.commit(ctx, prev, "order reset")
}

// Reorder moves the task at from so that it ends up at index to.
func (m *Manager) Reorder(ctx context.Context, from, to int) error {
	if !m.inRange(from) || !m.inRange(to) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	prev := m.save()
	moved := m.tasks[from]
	rest := append(m.tasks[:from:from], m.tasks[from+1:]...)
	out := make([]model.Task, 0, len(m.tasks))
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	m.tasks = out
	m.snapshot = model.CloneTasks(m.tasks)
	return m.commit(ctx, prev, "task moved", "from", from, "to", to)
}

type savedState struct {
	tasks    []model.Task
	snapshot []model.Task
	counters model.Counters
}

func (m *Manager) save() savedState {
	return savedState{
		tasks:    model.CloneTasks(m.tasks),
		snapshot: model.CloneTasks(m.snapshot),
		counters: m.counters,
	}
}

func (m *Manager) restore(s savedState) {
	m.tasks = s.tasks
	m.snapshot = s.snapshot
	m.counters = s.counters
}

// commit writes the whole state and renders. On a write failure the
// in-memory state is rolled back to prev.
func (m *Manager) commit(ctx context.Context, prev savedState, msg string, keyvals ...any) error {
	values, err := encodeState(m.tasks, m.snapshot, m.counters)
	if err == nil {
		err = store.SetAll(ctx, m.kv, values)
	}
	if err != nil {
		m.restore(prev)
		m.logger.Error("persist failed", "op", msg, "err", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	m.logger.Debug(msg, keyvals...)
	m.Render()
	return nil
}

func (m *Manager) reject(err error, userMsg string) error {
	m.logger.Info("rejected", "reason", err)
	m.alert.Alert(userMsg)
	return err
}

func (m *Manager) inRange(i int) bool {
	return i >= 0 && i < len(m.tasks)
}

// findText returns the index of a task whose text equals text ignoring case,
// skipping index skip, or -1.
func (m *Manager) findText(text string, skip int) int {
	for i, t := range m.tasks {
		if i == skip {
			continue
		}
		if strings.EqualFold(t.Text, text) {
			return i
		}
	}
	return -1
}
