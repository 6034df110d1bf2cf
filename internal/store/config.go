package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "config.toml"

// Config holds user preferences shared by the CLI and the TUI.
type Config struct {
	// Backend is the key/value backend: sqlite|file|mem.
	Backend string `toml:"backend,omitempty" json:"backend,omitempty" yaml:"backend,omitempty"`

	// Locale drives locale-aware sorting (BCP 47 tag, e.g. "en", "sv", "de").
	Locale string `toml:"locale,omitempty" json:"locale,omitempty" yaml:"locale,omitempty"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `toml:"log_level,omitempty" json:"logLevel,omitempty" yaml:"logLevel,omitempty"`

	// LockTimeout bounds how long CLI commands wait for a running TUI to release the store.
	LockTimeout Duration `toml:"lock_timeout,omitempty" json:"lockTimeout,omitempty" yaml:"lockTimeout,omitempty"`

	TUI *TUIConfig `toml:"tui,omitempty" json:"tui,omitempty" yaml:"tui,omitempty"`
}

type TUIConfig struct {
	// Glyphs selects the glyph set ("unicode" or "ascii").
	Glyphs string `toml:"glyphs,omitempty" json:"glyphs,omitempty" yaml:"glyphs,omitempty"`
}

// Duration is a time.Duration that reads and writes as a string ("2s").
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

const (
	DefaultLocale      = "en"
	DefaultLogLevel    = "info"
	DefaultLockTimeout = 2 * time.Second
)

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	c.Backend = ResolveBackend(c.Backend)
	if strings.TrimSpace(c.Locale) == "" {
		c.Locale = DefaultLocale
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LockTimeout.Duration <= 0 {
		c.LockTimeout.Duration = DefaultLockTimeout
	}
	if c.TUI == nil {
		c.TUI = &TUIConfig{}
	}
	if strings.TrimSpace(c.TUI.Glyphs) == "" {
		c.TUI.Glyphs = "unicode"
	}
	return c
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.tasklist).
	if v := strings.TrimSpace(os.Getenv("TASKLIST_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return err
	}
	// Unique temp name + rename so concurrent CLI/TUI writers never see a torn file.
	return atomicWriteFile(dir, configFileName+".*.tmp", path, buf.Bytes(), 0o600)
}

// SetConfigValue updates one field by its TOML key.
func (c *Config) SetConfigValue(key, value string) error {
	value = strings.TrimSpace(value)
	switch strings.TrimSpace(key) {
	case "backend":
		switch strings.ToLower(value) {
		case BackendSQLite, BackendFile, BackendMemory:
			c.Backend = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid backend %q (want sqlite|file|mem)", value)
		}
	case "locale":
		c.Locale = value
	case "log_level":
		switch strings.ToLower(value) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(value)
		default:
			return fmt.Errorf("invalid log_level %q (want debug|info|warn|error)", value)
		}
	case "lock_timeout":
		var d Duration
		if err := d.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid lock_timeout %q: %w", value, err)
		}
		c.LockTimeout = d
	case "tui.glyphs":
		switch strings.ToLower(value) {
		case "unicode", "ascii":
		default:
			return fmt.Errorf("invalid tui.glyphs %q (want unicode|ascii)", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Glyphs = strings.ToLower(value)
	default:
		return fmt.Errorf("unknown config key: %q", key)
	}
	return nil
}
