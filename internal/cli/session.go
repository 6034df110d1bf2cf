package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tasklist-cli/internal/logging"
	"tasklist-cli/internal/model"
	"tasklist-cli/internal/store"
	"tasklist-cli/internal/tasklist"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// session is one locked load-mutate-save cycle against a store dir.
type session struct {
	store  store.Store
	cfg    store.Config
	kv     store.KV
	lock   *store.Lock
	logger *log.Logger
	logC   io.Closer
	mgr    *tasklist.Manager

	// last is the view most recently pushed by the manager.
	last model.View
}

func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func loadConfig(app *App) (store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return store.Config{}, err
	}
	c := *cfg
	if app.Backend != "" {
		c.Backend = app.Backend
	}
	return c.WithDefaults(), nil
}

// openSession locks the store, opens the logger and the key/value store, and
// loads the manager. extra options are applied after the session defaults.
func openSession(ctx context.Context, app *App, extra ...tasklist.Option) (*session, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(app)
	if err != nil {
		return nil, err
	}

	lock, err := s.Lock(ctx, cfg.LockTimeout.Duration)
	if err != nil {
		return nil, err
	}
	sess := &session{store: s, cfg: cfg, lock: lock}

	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.LogLevel)
	logger, closer, err := logging.OpenFile(s.LogPath(), opts)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.logger, sess.logC = logger, closer

	kv, err := s.Open(ctx, cfg.Backend)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.kv = kv

	base := []tasklist.Option{
		tasklist.WithLogger(logger),
		tasklist.WithLocale(cfg.Locale),
		tasklist.WithRenderer(tasklist.RenderFunc(func(v model.View) { sess.last = v })),
	}
	mgr, err := tasklist.New(ctx, kv, append(base, extra...)...)
	if err != nil {
		_ = sess.Close()
		return nil, err
	}
	sess.mgr = mgr
	sess.last = mgr.View()
	logger.Debug("session opened", "dir", s.Dir, "backend", cfg.Backend)
	return sess, nil
}

func (s *session) Close() error {
	var errs []error
	if s.kv != nil {
		errs = append(errs, s.kv.Close())
	}
	if s.logC != nil {
		errs = append(errs, s.logC.Close())
	}
	errs = append(errs, s.lock.Unlock())
	return errors.Join(errs...)
}

// withSession runs fn inside a session wired to the command's stdin/stderr.
func withSession(cmd *cobra.Command, app *App, yes bool, fn func(s *session) error) error {
	sess, err := openSession(cmdContext(cmd), app,
		tasklist.WithAlerter(tasklist.AlertFunc(func(msg string) {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		})),
		tasklist.WithConfirmer(newPromptConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), yes)),
	)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer sess.Close()
	return fn(sess)
}
