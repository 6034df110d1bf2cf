package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	dirName         = ".tasklist"
	sqliteFileName  = "tasklist.sqlite"
	fileKVFileName  = "kv.json"
	lockFileName    = "tasklist.lock"
	logFileName     = "tasklist.log"
	BackendSQLite   = "sqlite"
	BackendFile     = "file"
	BackendMemory   = "mem"
	defaultBackend  = BackendSQLite
	envStoreBackend = "TASKLIST_BACKEND"
)

// Store is a directory holding one task list (its key/value data, lock and log).
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a project-local .tasklist dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir prefers a project-local .tasklist dir and falls back to the
// per-user one inside the config dir.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	cfgDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfgDir, "default"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) sqlitePath() string { return filepath.Join(s.Dir, sqliteFileName) }
func (s Store) fileKVPath() string { return filepath.Join(s.Dir, fileKVFileName) }
func (s Store) lockPath() string   { return filepath.Join(s.Dir, lockFileName) }

// LogPath is where the tasklist logger writes for this store.
func (s Store) LogPath() string { return filepath.Join(s.Dir, logFileName) }

// ResolveBackend picks the backend: explicit value, then TASKLIST_BACKEND, then sqlite.
func ResolveBackend(backend string) string {
	backend = strings.ToLower(strings.TrimSpace(backend))
	if backend == "" {
		backend = strings.ToLower(strings.TrimSpace(os.Getenv(envStoreBackend)))
	}
	if backend == "" {
		return defaultBackend
	}
	return backend
}

// Open returns the key/value store for this dir using the named backend.
func (s Store) Open(ctx context.Context, backend string) (KV, error) {
	switch ResolveBackend(backend) {
	case BackendSQLite:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenSQLiteKV(ctx, s.sqlitePath())
	case BackendFile:
		if err := s.Ensure(); err != nil {
			return nil, err
		}
		return OpenFileKV(s.fileKVPath())
	case BackendMemory:
		return NewMemKV(), nil
	default:
		return nil, fmt.Errorf("unknown store backend: %q (want sqlite|file|mem)", backend)
	}
}
