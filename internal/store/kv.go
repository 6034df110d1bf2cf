package store

import (
	"context"
	"sort"
	"sync"
)

// Keys used by the task list.
const (
	KeyTasks        = "tasks"
	KeyDeletedCount = "deletedCount"
	KeyEditedCount  = "editedCount"

	// KeyOriginalOrder holds the task ids in snapshot order, for reset-order.
	KeyOriginalOrder = "originalOrder"
)

// KV is a string-keyed get/set store. Writes replace the whole value.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// BatchKV is implemented by stores that can write several keys atomically.
type BatchKV interface {
	KV
	SetMany(ctx context.Context, values map[string]string) error
}

// SetAll writes values through SetMany when kv supports it, otherwise key by key
// in sorted order.
func SetAll(ctx context.Context, kv KV, values map[string]string) error {
	if b, ok := kv.(BatchKV); ok {
		return b.SetMany(ctx, values)
	}
	for _, k := range sortedKeys(values) {
		if err := kv.Set(ctx, k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MemKV keeps values in memory. Useful for tests and --backend=mem.
type MemKV struct {
	mu     sync.Mutex
	values map[string]string
	sets   int

	failErr error
}

func NewMemKV() *MemKV {
	return &MemKV{values: map[string]string{}}
}

func (m *MemKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	m.values[key] = value
	m.sets++
	return nil
}

// Writes reports how many Set calls succeeded.
func (m *MemKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

// FailWith makes every later Set return err (nil restores normal behavior).
func (m *MemKV) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

func (m *MemKV) Close() error { return nil }
