package tui

import (
	"tasklist-cli/internal/model"
	"tasklist-cli/internal/tasklist"
)

// Bridge connects the manager's blocking capabilities to the event loop.
//
// bubbletea can't block inside Update waiting for a modal answer, so a
// confirmation runs in two passes: the first pass answers "no" and records
// the prompt (the manager leaves state untouched on a declined confirm), the
// TUI shows the prompt in a modal, and a confirmed modal re-runs the same
// operation with the answer set to "yes".
type Bridge struct {
	answer bool
	asked  string
	alerts []string
	view   model.View
}

func NewBridge() *Bridge { return &Bridge{} }

// Options wires the bridge into a manager.
func (b *Bridge) Options() []tasklist.Option {
	return []tasklist.Option{
		tasklist.WithConfirmer(b),
		tasklist.WithAlerter(b),
		tasklist.WithRenderer(b),
	}
}

func (b *Bridge) Confirm(prompt string) bool {
	b.asked = prompt
	return b.answer
}

func (b *Bridge) Alert(msg string) {
	b.alerts = append(b.alerts, msg)
}

func (b *Bridge) Render(v model.View) {
	b.view = v
}

// View is the projection from the last render.
func (b *Bridge) View() model.View { return b.view }

// ask runs op without consent and returns the prompt the manager wanted
// answered, or "" when op didn't ask.
func (b *Bridge) ask(op func() error) (string, error) {
	b.answer = false
	b.asked = ""
	err := op()
	return b.asked, err
}

// confirmed runs op with every confirmation answered "yes".
func (b *Bridge) confirmed(op func() error) error {
	b.answer = true
	defer func() { b.answer = false }()
	return op()
}

// takeAlert pops the oldest pending alert.
func (b *Bridge) takeAlert() (string, bool) {
	if len(b.alerts) == 0 {
		return "", false
	}
	msg := b.alerts[0]
	b.alerts = b.alerts[1:]
	return msg, true
}
