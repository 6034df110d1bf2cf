package tasklist

import (
	"context"
	"reflect"
	"testing"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
)

func TestEncodeDecodeTasks_RoundTrip(t *testing.T) {
	in := []model.Task{
		{ID: "a", Text: "Milk", Completed: true},
		{ID: "b", Text: "Eggs \"large\"", Selected: true},
		{ID: "c", Text: "Smörgås"},
	}
	raw, err := EncodeTasks(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeTasks(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n got: %+v\nwant: %+v", out, in)
	}
}

func TestDecodeTasks_EmptyForms(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "[]"} {
		got, err := DecodeTasks(raw)
		if err != nil {
			t.Fatalf("decode %q: %v", raw, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("decode %q: expected empty non-nil list, got %#v", raw, got)
		}
	}
	if _, err := DecodeTasks("{not json"); err == nil {
		t.Fatalf("expected error for malformed list")
	}
}

func TestDecodeCount(t *testing.T) {
	tests := map[string]int{
		"":    0,
		"0":   0,
		"7":   7,
		" 12": 12,
		"-3":  0,
		"abc": 0,
	}
	for raw, want := range tests {
		if got := DecodeCount(raw); got != want {
			t.Fatalf("DecodeCount(%q) = %d, want %d", raw, got, want)
		}
	}
}

func TestNew_RefusesCorruptTaskList(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()
	_ = kv.Set(ctx, store.KeyTasks, "[{oops")
	if _, err := New(ctx, kv); err == nil {
		t.Fatalf("expected load error for corrupt task list")
	}
}

func TestPersistedState_RoundTripsThroughSQLite(t *testing.T) {
	ctx := context.Background()
	s := store.Store{Dir: t.TempDir()}

	kv, err := s.Open(ctx, store.BackendSQLite)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	m, err := New(ctx, kv, WithConfirmer(ConfirmFunc(func(string) bool { return true })))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, txt := range []string{"one", "two", "three"} {
		if err := m.AddTask(ctx, txt); err != nil {
			t.Fatalf("add %q: %v", txt, err)
		}
	}
	_ = m.ToggleComplete(ctx, 2)
	_ = m.EditTask(ctx, 0, "uno")
	_ = m.DeleteTask(ctx, 1)
	want := m.Tasks()
	wantCounters := m.Counters()
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv2, err := s.Open(ctx, store.BackendSQLite)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv2.Close()
	m2, err := New(ctx, kv2)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reflect.DeepEqual(m2.Tasks(), want) {
		t.Fatalf("tasks differ:\n got: %+v\nwant: %+v", m2.Tasks(), want)
	}
	if m2.Counters() != wantCounters {
		t.Fatalf("counters differ: got %+v want %+v", m2.Counters(), wantCounters)
	}
}

func TestResetOrder_SurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemKV()

	m, err := New(ctx, kv)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	for _, txt := range []string{"cherry", "apple", "banana"} {
		if err := m.AddTask(ctx, txt); err != nil {
			t.Fatalf("add %q: %v", txt, err)
		}
	}
	if err := m.SortAscending(ctx); err != nil {
		t.Fatalf("sort: %v", err)
	}

	raw, ok, _ := kv.Get(ctx, store.KeyOriginalOrder)
	if !ok {
		t.Fatalf("expected %q to be stored", store.KeyOriginalOrder)
	}
	if got := len(DecodeOrder(raw)); got != 3 {
		t.Fatalf("expected 3 ids in stored order, got %d (%s)", got, raw)
	}

	m2, err := New(ctx, kv)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if err := m2.ResetOrder(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	got := []string{}
	for _, tk := range m2.Tasks() {
		got = append(got, tk.Text)
	}
	want := []string{"cherry", "apple", "banana"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("reset after reload = %v, want %v", got, want)
	}
}

func TestOrderSnapshot(t *testing.T) {
	tasks := []model.Task{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		name  string
		order []string
		want  []string
	}{
		{name: "no stored order", order: nil, want: []string{"a", "b", "c"}},
		{name: "full order", order: []string{"c", "a", "b"}, want: []string{"c", "a", "b"}},
		{name: "unknown ids skipped", order: []string{"zz", "b"}, want: []string{"b", "a", "c"}},
		{name: "duplicates ignored", order: []string{"b", "b", "a"}, want: []string{"b", "a", "c"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := []string{}
			for _, tk := range orderSnapshot(tasks, tc.order) {
				got = append(got, tk.ID)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
	if DecodeOrder("{bad") != nil {
		t.Fatalf("expected nil order for malformed value")
	}
}
