package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestKVBackends_GetSet(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendFile, BackendMemory} {
		t.Run(backend, func(t *testing.T) {
			s := Store{Dir: t.TempDir()}
			kv, err := s.Open(ctx, backend)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			defer kv.Close()

			if _, ok, err := kv.Get(ctx, KeyTasks); err != nil || ok {
				t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
			}
			if err := kv.Set(ctx, KeyTasks, "[]"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Set(ctx, KeyTasks, `[{"text":"a"}]`); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, ok, err := kv.Get(ctx, KeyTasks)
			if err != nil || !ok || got != `[{"text":"a"}]` {
				t.Fatalf("unexpected get: %q ok=%v err=%v", got, ok, err)
			}

			if err := SetAll(ctx, kv, map[string]string{KeyDeletedCount: "2", KeyEditedCount: "5"}); err != nil {
				t.Fatalf("set all: %v", err)
			}
			for k, want := range map[string]string{KeyDeletedCount: "2", KeyEditedCount: "5"} {
				if v, _, _ := kv.Get(ctx, k); v != want {
					t.Fatalf("%s: got %q want %q", k, v, want)
				}
			}
		})
	}
}

func TestKVBackends_PersistAcrossReopen(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSQLite, BackendFile} {
		t.Run(backend, func(t *testing.T) {
			s := Store{Dir: t.TempDir()}
			kv, err := s.Open(ctx, backend)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := kv.Set(ctx, KeyEditedCount, "9"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := kv.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}

			kv2, err := s.Open(ctx, backend)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer kv2.Close()
			if v, ok, _ := kv2.Get(ctx, KeyEditedCount); !ok || v != "9" {
				t.Fatalf("expected 9 after reopen, got %q ok=%v", v, ok)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	s := Store{Dir: t.TempDir()}
	if _, err := s.Open(context.Background(), "redis"); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestResolveBackend_EnvFallback(t *testing.T) {
	t.Setenv(envStoreBackend, "file")
	if got := ResolveBackend(""); got != BackendFile {
		t.Fatalf("expected env backend, got %q", got)
	}
	if got := ResolveBackend("SQLite"); got != BackendSQLite {
		t.Fatalf("explicit backend should win, got %q", got)
	}
}

func TestOpenFileKV_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), fileKVFileName)
	if err := os.WriteFile(path, []byte("{nope"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenFileKV(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLock_SecondHolderTimesOut(t *testing.T) {
	ctx := context.Background()
	s := Store{Dir: t.TempDir()}

	first, err := s.Lock(ctx, time.Second)
	if err != nil {
		t.Fatalf("first lock: %v", err)
	}

	_, err = s.Lock(ctx, 100*time.Millisecond)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	second, err := s.Lock(ctx, 0)
	if err != nil {
		t.Fatalf("lock after release: %v", err)
	}
	_ = second.Unlock()
	_ = second.Unlock()

	var nilLock *Lock
	if err := nilLock.Unlock(); err != nil {
		t.Fatalf("nil unlock: %v", err)
	}
}
