package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileKV keeps all keys in one JSON object file, rewritten atomically on every write.
type FileKV struct {
	path   string
	values map[string]string
}

func OpenFileKV(path string) (*FileKV, error) {
	kv := &FileKV{path: path, values: map[string]string{}}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return kv, nil
		}
		return nil, err
	}
	if len(b) == 0 {
		return kv, nil
	}
	if err := json.Unmarshal(b, &kv.values); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if kv.values == nil {
		kv.values = map[string]string{}
	}
	return kv, nil
}

func (f *FileKV) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *FileKV) Set(ctx context.Context, key, value string) error {
	return f.SetMany(ctx, map[string]string{key: value})
}

func (f *FileKV) SetMany(_ context.Context, values map[string]string) error {
	next := make(map[string]string, len(f.values)+len(values))
	for k, v := range f.values {
		next[k] = v
	}
	for k, v := range values {
		next[k] = v
	}
	b, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return err
	}
	if err := atomicWriteFile(filepath.Dir(f.path), fileKVFileName+".*.tmp", f.path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	f.values = next
	return nil
}

func (f *FileKV) Close() error { return nil }
