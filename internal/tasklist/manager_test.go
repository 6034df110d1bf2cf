package tasklist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
)

type harness struct {
	kv      *store.MemKV
	m       *Manager
	alerts  []string
	prompts []string
	answer  bool
	renders []model.View
}

func newHarness(t *testing.T, texts ...string) *harness {
	t.Helper()
	h := &harness{kv: store.NewMemKV(), answer: true}
	seq := 0
	m, err := New(context.Background(), h.kv,
		WithConfirmer(ConfirmFunc(func(p string) bool {
			h.prompts = append(h.prompts, p)
			return h.answer
		})),
		WithAlerter(AlertFunc(func(msg string) { h.alerts = append(h.alerts, msg) })),
		WithRenderer(RenderFunc(func(v model.View) { h.renders = append(h.renders, v) })),
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("t%d", seq)
		}),
	)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}
	h.m = m
	for _, s := range texts {
		if err := m.AddTask(context.Background(), s); err != nil {
			t.Fatalf("seed %q: %v", s, err)
		}
	}
	h.renders = nil
	return h
}

func texts(ts []model.Task) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Text)
	}
	return out
}

func TestAddTask_AppendsWithDefaults(t *testing.T) {
	h := newHarness(t, "A")
	ctx := context.Background()

	if err := h.m.AddTask(ctx, "  Buy bread  "); err != nil {
		t.Fatalf("add: %v", err)
	}
	ts := h.m.Tasks()
	if len(ts) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(ts))
	}
	last := ts[1]
	if last.Text != "Buy bread" || last.Completed || last.Selected {
		t.Fatalf("unexpected new task: %+v", last)
	}
	if last.ID == "" {
		t.Fatalf("expected generated id")
	}
	if len(h.renders) != 1 {
		t.Fatalf("expected one render, got %d", len(h.renders))
	}
	if got := texts(h.m.Snapshot()); !reflect.DeepEqual(got, []string{"A", "Buy bread"}) {
		t.Fatalf("snapshot not refreshed: %v", got)
	}
}

func TestAddTask_RejectsEmptyAndDuplicates(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
		wantMsg string
	}{
		{name: "empty", text: "", wantErr: ErrEmptyInput, wantMsg: "Task cannot be empty!"},
		{name: "blank", text: "   \t", wantErr: ErrEmptyInput, wantMsg: "Task cannot be empty!"},
		{name: "exact duplicate", text: "Milk", wantErr: ErrDuplicateText, wantMsg: "This task already exists!"},
		{name: "case variant", text: "milk", wantErr: ErrDuplicateText, wantMsg: "This task already exists!"},
		{name: "padded case variant", text: "  MILK ", wantErr: ErrDuplicateText, wantMsg: "This task already exists!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "Milk")
			writes := h.kv.Writes()

			err := h.m.AddTask(context.Background(), tt.text)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if h.m.Len() != 1 {
				t.Fatalf("expected list length 1, got %d", h.m.Len())
			}
			if len(h.alerts) != 1 || h.alerts[0] != tt.wantMsg {
				t.Fatalf("unexpected alerts: %v", h.alerts)
			}
			if h.kv.Writes() != writes {
				t.Fatalf("rejected add must not write")
			}
			if len(h.renders) != 0 {
				t.Fatalf("rejected add must not render")
			}
		})
	}
}

func TestEditTask(t *testing.T) {
	ctx := context.Background()

	t.Run("replaces text and counts edit", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		if err := h.m.EditTask(ctx, 1, " Bee "); err != nil {
			t.Fatalf("edit: %v", err)
		}
		if got := h.m.Tasks()[1].Text; got != "Bee" {
			t.Fatalf("expected Bee, got %q", got)
		}
		if h.m.Counters().Edited != 1 {
			t.Fatalf("expected editedCount 1, got %d", h.m.Counters().Edited)
		}
		raw, _, _ := h.kv.Get(ctx, store.KeyEditedCount)
		if raw != "1" {
			t.Fatalf("expected persisted editedCount 1, got %q", raw)
		}
	})

	t.Run("collision leaves text and counter", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		err := h.m.EditTask(ctx, 1, "a")
		if !errors.Is(err, ErrDuplicateText) {
			t.Fatalf("expected duplicate error, got %v", err)
		}
		if got := h.m.Tasks()[1].Text; got != "B" {
			t.Fatalf("text changed to %q", got)
		}
		if h.m.Counters().Edited != 0 {
			t.Fatalf("editedCount moved on rejected edit")
		}
		if len(h.alerts) != 1 {
			t.Fatalf("expected one alert, got %v", h.alerts)
		}
	})

	t.Run("own text in other case is allowed", func(t *testing.T) {
		h := newHarness(t, "milk")
		if err := h.m.EditTask(ctx, 0, "Milk"); err != nil {
			t.Fatalf("edit: %v", err)
		}
		if got := h.m.Tasks()[0].Text; got != "Milk" {
			t.Fatalf("expected Milk, got %q", got)
		}
	})

	t.Run("blank is a silent no-op", func(t *testing.T) {
		h := newHarness(t, "A")
		err := h.m.EditTask(ctx, 0, "   ")
		if !errors.Is(err, ErrEmptyInput) {
			t.Fatalf("expected empty input, got %v", err)
		}
		if len(h.alerts) != 0 {
			t.Fatalf("blank edit must not alert: %v", h.alerts)
		}
		if h.m.Tasks()[0].Text != "A" || h.m.Counters().Edited != 0 {
			t.Fatalf("state changed on blank edit")
		}
	})

	t.Run("edit does not touch snapshot order", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		if err := h.m.EditTask(ctx, 0, "Z"); err != nil {
			t.Fatalf("edit: %v", err)
		}
		if got := texts(h.m.Snapshot()); !reflect.DeepEqual(got, []string{"A", "B"}) {
			t.Fatalf("snapshot changed by edit: %v", got)
		}
	})
}

func TestToggleComplete_TwiceRestores(t *testing.T) {
	h := newHarness(t, "A", "B", "C")
	ctx := context.Background()

	if err := h.m.ToggleComplete(ctx, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	v := h.renders[len(h.renders)-1]
	if v.Completed != 1 || v.Total != 3 || !v.Rows[1].Completed {
		t.Fatalf("unexpected view after toggle: %+v", v)
	}
	if err := h.m.ToggleComplete(ctx, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if h.m.Tasks()[1].Completed {
		t.Fatalf("expected completed=false after two toggles")
	}
	if h.m.View().Completed != 0 {
		t.Fatalf("expected completed count 0")
	}
}

func TestToggleSelect(t *testing.T) {
	h := newHarness(t, "A")
	if err := h.m.ToggleSelect(context.Background(), 0); err != nil {
		t.Fatalf("toggle select: %v", err)
	}
	if !h.m.Tasks()[0].Selected || !h.m.View().Rows[0].Selected {
		t.Fatalf("expected selected")
	}
}

func TestIndexOutOfRange_IsNoOp(t *testing.T) {
	h := newHarness(t, "A")
	ctx := context.Background()
	writes := h.kv.Writes()

	ops := map[string]func() error{
		"edit":            func() error { return h.m.EditTask(ctx, 3, "x") },
		"complete":        func() error { return h.m.ToggleComplete(ctx, -1) },
		"select":          func() error { return h.m.ToggleSelect(ctx, 1) },
		"delete":          func() error { return h.m.DeleteTask(ctx, 1) },
		"reorder from":    func() error { return h.m.Reorder(ctx, 5, 0) },
		"reorder to":      func() error { return h.m.Reorder(ctx, 0, 1) },
		"negative delete": func() error { return h.m.DeleteTask(ctx, -1) },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("%s: expected ErrIndexOutOfRange, got %v", name, err)
		}
	}
	if h.kv.Writes() != writes || len(h.renders) != 0 || len(h.alerts) != 0 || len(h.prompts) != 0 {
		t.Fatalf("out-of-range ops must not write, render, alert or prompt")
	}
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()

	t.Run("confirmed delete counts once", func(t *testing.T) {
		h := newHarness(t, "A", "B", "C")
		if err := h.m.DeleteTask(ctx, 1); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"A", "C"}) {
			t.Fatalf("unexpected tasks: %v", got)
		}
		if got := texts(h.m.Snapshot()); !reflect.DeepEqual(got, []string{"A", "C"}) {
			t.Fatalf("snapshot not refreshed: %v", got)
		}
		if h.m.Counters().Deleted != 1 {
			t.Fatalf("expected deletedCount 1, got %d", h.m.Counters().Deleted)
		}
		if len(h.prompts) != 1 || h.prompts[0] != "Are you sure you want to delete this task?" {
			t.Fatalf("unexpected prompts: %v", h.prompts)
		}
	})

	t.Run("declined delete changes nothing", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		h.answer = false
		writes := h.kv.Writes()
		err := h.m.DeleteTask(ctx, 0)
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("expected cancelled, got %v", err)
		}
		if h.m.Len() != 2 || h.m.Counters().Deleted != 0 || h.kv.Writes() != writes {
			t.Fatalf("declined delete mutated state")
		}
	})
}

func TestDeleteSelected(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing selected alerts", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		err := h.m.DeleteSelected(ctx)
		if !errors.Is(err, ErrNoSelection) {
			t.Fatalf("expected no selection, got %v", err)
		}
		if len(h.alerts) != 1 || h.alerts[0] != "No tasks selected!" {
			t.Fatalf("unexpected alerts: %v", h.alerts)
		}
		if len(h.prompts) != 0 {
			t.Fatalf("must not ask for confirmation")
		}
	})

	t.Run("removes all selected and counts once", func(t *testing.T) {
		h := newHarness(t, "A", "B", "C", "D")
		for _, i := range []int{0, 2, 3} {
			if err := h.m.ToggleSelect(ctx, i); err != nil {
				t.Fatalf("select %d: %v", i, err)
			}
		}
		if err := h.m.DeleteSelected(ctx); err != nil {
			t.Fatalf("delete selected: %v", err)
		}
		if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"B"}) {
			t.Fatalf("unexpected tasks: %v", got)
		}
		if h.m.Counters().Deleted != 1 {
			t.Fatalf("expected deletedCount 1, got %d", h.m.Counters().Deleted)
		}
		if len(h.prompts) != 1 || h.prompts[0] != "Are you sure you want to delete 3 selected tasks?" {
			t.Fatalf("unexpected prompts: %v", h.prompts)
		}
	})

	t.Run("declined keeps selection", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		_ = h.m.ToggleSelect(ctx, 0)
		h.answer = false
		if err := h.m.DeleteSelected(ctx); !errors.Is(err, ErrCancelled) {
			t.Fatalf("expected cancelled, got %v", err)
		}
		if h.m.Len() != 2 || !h.m.Tasks()[0].Selected {
			t.Fatalf("declined bulk delete mutated state")
		}
	})
}

func TestSortThenResetRestoresOrder(t *testing.T) {
	h := newHarness(t, "pear", "Apple", "banana", "apple pie")
	ctx := context.Background()
	before := texts(h.m.Tasks())

	if err := h.m.SortAscending(ctx); err != nil {
		t.Fatalf("sort asc: %v", err)
	}
	if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"Apple", "apple pie", "banana", "pear"}) {
		t.Fatalf("unexpected ascending order: %v", got)
	}
	if err := h.m.SortDescending(ctx); err != nil {
		t.Fatalf("sort desc: %v", err)
	}
	if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"pear", "banana", "apple pie", "Apple"}) {
		t.Fatalf("unexpected descending order: %v", got)
	}
	if err := h.m.ResetOrder(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, before) {
		t.Fatalf("reset did not restore %v, got %v", before, got)
	}
}

func TestSortAscending_IsLocaleAware(t *testing.T) {
	h := newHarness(t, "zebra", "Äpfel", "apple", "Banana")
	if err := h.m.SortAscending(context.Background()); err != nil {
		t.Fatalf("sort: %v", err)
	}
	// Byte order would put "Banana" first and "Äpfel" last.
	if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"Äpfel", "apple", "Banana", "zebra"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestResetOrder_KeepsFlagChangesAfterSort(t *testing.T) {
	h := newHarness(t, "b", "a")
	ctx := context.Background()

	if err := h.m.SortAscending(ctx); err != nil {
		t.Fatalf("sort: %v", err)
	}
	// "b" is now at index 1.
	if err := h.m.ToggleComplete(ctx, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := h.m.EditTask(ctx, 1, "bee"); err != nil {
		t.Fatalf("edit: %v", err)
	}
	if err := h.m.ResetOrder(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	ts := h.m.Tasks()
	if got := texts(ts); !reflect.DeepEqual(got, []string{"bee", "a"}) {
		t.Fatalf("unexpected order: %v", got)
	}
	if !ts[0].Completed {
		t.Fatalf("completion made after the snapshot was lost")
	}
}

func TestReorder(t *testing.T) {
	ctx := context.Background()

	t.Run("reorder updates snapshot", func(t *testing.T) {
		h := newHarness(t, "A", "B")
		if err := h.m.Reorder(ctx, 0, 1); err != nil {
			t.Fatalf("reorder: %v", err)
		}
		if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"B", "A"}) {
			t.Fatalf("unexpected order: %v", got)
		}
		if err := h.m.ResetOrder(ctx); err != nil {
			t.Fatalf("reset: %v", err)
		}
		if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"B", "A"}) {
			t.Fatalf("reset after reorder should keep [B A], got %v", got)
		}
	})

	tests := []struct {
		from, to int
		want     []string
	}{
		{from: 0, to: 3, want: []string{"B", "C", "D", "A"}},
		{from: 3, to: 0, want: []string{"D", "A", "B", "C"}},
		{from: 1, to: 2, want: []string{"A", "C", "B", "D"}},
		{from: 2, to: 1, want: []string{"A", "C", "B", "D"}},
		{from: 2, to: 2, want: []string{"A", "B", "C", "D"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d to %d", tt.from, tt.to), func(t *testing.T) {
			h := newHarness(t, "A", "B", "C", "D")
			if err := h.m.Reorder(ctx, tt.from, tt.to); err != nil {
				t.Fatalf("reorder: %v", err)
			}
			if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAddAfterSort_ResetIsNoOpOnOrder(t *testing.T) {
	h := newHarness(t, "b", "a")
	ctx := context.Background()
	if err := h.m.SortAscending(ctx); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if err := h.m.AddTask(ctx, "c"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := h.m.ResetOrder(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := texts(h.m.Tasks()); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order: %v", got)
	}
}

func TestPersistFailure_RollsBack(t *testing.T) {
	h := newHarness(t, "A")
	ctx := context.Background()
	boom := errors.New("disk full")
	h.kv.FailWith(boom)

	err := h.m.AddTask(ctx, "B")
	if !errors.Is(err, ErrPersist) || !errors.Is(err, boom) {
		t.Fatalf("expected persist error wrapping cause, got %v", err)
	}
	if h.m.Len() != 1 || len(h.m.Snapshot()) != 1 {
		t.Fatalf("in-memory state not rolled back")
	}
	if len(h.renders) != 0 {
		t.Fatalf("failed commit must not render")
	}

	_ = h.m.ToggleSelect(ctx, 0)
	err = h.m.DeleteTask(ctx, 0)
	if !errors.Is(err, ErrPersist) {
		t.Fatalf("expected persist error, got %v", err)
	}
	if h.m.Counters().Deleted != 0 || h.m.Len() != 1 {
		t.Fatalf("counter or list moved on failed delete")
	}
}

func TestNew_LoadsPersistedState(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, "A", "B")
	_ = h.m.ToggleComplete(ctx, 0)
	_ = h.m.EditTask(ctx, 1, "Bee")
	_ = h.m.DeleteTask(ctx, 0)

	reloaded, err := New(ctx, h.kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(reloaded.Tasks(), h.m.Tasks()) {
		t.Fatalf("tasks differ after reload:\n got: %+v\nwant: %+v", reloaded.Tasks(), h.m.Tasks())
	}
	if reloaded.Counters() != (model.Counters{Deleted: 1, Edited: 1}) {
		t.Fatalf("unexpected counters: %+v", reloaded.Counters())
	}
	if !reflect.DeepEqual(reloaded.Snapshot(), reloaded.Tasks()) {
		t.Fatalf("snapshot should start as a copy of the loaded list")
	}
}

func TestNew_EmptyStoreDefaults(t *testing.T) {
	m, err := New(context.Background(), store.NewMemKV())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if m.Len() != 0 || m.Counters() != (model.Counters{}) {
		t.Fatalf("expected empty list and zero counters")
	}
	v := m.View()
	if v.Total != 0 || v.Completed != 0 || len(v.Rows) != 0 {
		t.Fatalf("unexpected view: %+v", v)
	}
}

func TestNew_AssignsMissingIDs(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	_ = kv.Set(ctx, store.KeyTasks, `[{"text":"legacy","completed":true,"selected":false}]`)

	m, err := New(ctx, kv, WithIDGenerator(func() string { return "fresh" }))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ts := m.Tasks()
	if len(ts) != 1 || ts[0].ID != "fresh" || !ts[0].Completed {
		t.Fatalf("unexpected tasks: %+v", ts)
	}
	if m.IndexOf("fresh") != 0 || m.IndexOf("nope") != -1 {
		t.Fatalf("IndexOf mismatch")
	}
}

func TestNew_DefaultConfirmerDeclines(t *testing.T) {
	ctx := context.Background()
	m, err := New(ctx, store.NewMemKV())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.AddTask(ctx, "A"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.DeleteTask(ctx, 0); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected cancelled without a confirmer, got %v", err)
	}
}

func TestDeclinedDelete_LogsOnlyAtDebug(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	kv := store.NewMemKV()
	m, err := New(ctx, kv,
		WithLogger(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})),
		WithConfirmer(ConfirmFunc(func(string) bool { return false })),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := m.AddTask(ctx, "one"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := m.ToggleSelect(ctx, 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	buf.Reset()

	if err := m.DeleteTask(ctx, 0); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if err := m.DeleteSelected(ctx); !errors.Is(err, ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if strings.Contains(buf.String(), "declined") {
		t.Fatalf("declined confirmations must stay below info level:\n%s", buf.String())
	}
	if m.Len() != 1 {
		t.Fatalf("declined delete removed a task")
	}
}
