package tasklist

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
)

// EncodeTasks serializes tasks the way they are kept under the "tasks" key.
func EncodeTasks(tasks []model.Task) (string, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	b, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodeTasks parses a stored task list. Empty input and JSON null yield an empty list.
func DecodeTasks(raw string) ([]model.Task, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []model.Task{}, nil
	}
	var out []model.Task
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Task{}
	}
	return out, nil
}

// DecodeCount parses a stored counter; anything unparseable or negative reads as zero.
func DecodeCount(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DecodeOrder parses the stored snapshot order. Anything unparseable reads as
// no order, so the loaded list becomes the snapshot.
func DecodeOrder(raw string) []string {
	var ids []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &ids); err != nil {
		return nil
	}
	return ids
}

// orderSnapshot arranges tasks by the ids in order. Tasks not named there
// follow in list order.
func orderSnapshot(tasks []model.Task, order []string) []model.Task {
	byID := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}
	out := make([]model.Task, 0, len(tasks))
	for _, id := range order {
		if t, ok := byID[id]; ok {
			out = append(out, t)
			delete(byID, id)
		}
	}
	for _, t := range tasks {
		if _, ok := byID[t.ID]; ok {
			out = append(out, t)
			delete(byID, t.ID)
		}
	}
	return out
}

type persistedState struct {
	tasks    []model.Task
	order    []string
	counters model.Counters
}

func encodeState(tasks, snapshot []model.Task, c model.Counters) (map[string]string, error) {
	rawTasks, err := EncodeTasks(tasks)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(snapshot))
	for _, t := range snapshot {
		ids = append(ids, t.ID)
	}
	rawOrder, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		store.KeyTasks:         rawTasks,
		store.KeyOriginalOrder: string(rawOrder),
		store.KeyDeletedCount:  strconv.Itoa(c.Deleted),
		store.KeyEditedCount:   strconv.Itoa(c.Edited),
	}, nil
}

func loadState(ctx context.Context, kv store.KV) (persistedState, error) {
	st := persistedState{tasks: []model.Task{}}

	raw, ok, err := kv.Get(ctx, store.KeyTasks)
	if err != nil {
		return st, err
	}
	if ok {
		st.tasks, err = DecodeTasks(raw)
		if err != nil {
			return st, fmt.Errorf("decode %q: %w", store.KeyTasks, err)
		}
	}

	if raw, ok, err := kv.Get(ctx, store.KeyOriginalOrder); err != nil {
		return st, err
	} else if ok {
		st.order = DecodeOrder(raw)
	}
	if raw, ok, err := kv.Get(ctx, store.KeyDeletedCount); err != nil {
		return st, err
	} else if ok {
		st.counters.Deleted = DecodeCount(raw)
	}
	if raw, ok, err := kv.Get(ctx, store.KeyEditedCount); err != nil {
		return st, err
	} else if ok {
		st.counters.Edited = DecodeCount(raw)
	}
	return st, nil
}
