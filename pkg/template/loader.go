package template

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// DefaultSuffix marks template files inside a filesystem. The suffix is
// stripped from the registered name, so "postgresql/postgresql.conf.j2" is
// stored as "postgresql/postgresql.conf".
const DefaultSuffix = ".j2"

// LoadOption configures LoadFS.
type LoadOption func(*loadConfig)

type loadConfig struct {
	suffix string
	prefix string
	parse  []Option
}

// WithSuffix overrides DefaultSuffix.
func WithSuffix(suffix string) LoadOption {
	return func(cfg *loadConfig) {
		trimmed := strings.TrimSpace(suffix)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.suffix = trimmed
	}
}

// WithNamePrefix prepends prefix to every registered name.
func WithNamePrefix(prefix string) LoadOption {
	return func(cfg *loadConfig) {
		cfg.prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	}
}

// WithParseOptions forwards parse options to every loaded template.
func WithParseOptions(opts ...Option) LoadOption {
	return func(cfg *loadConfig) {
		cfg.parse = append(cfg.parse, opts...)
	}
}

// LoadFS builds a new store from every template file in fsys.
func LoadFS(fsys fs.FS, opts ...LoadOption) (*Store, error) {
	store := NewStore()
	if err := store.LoadFS(fsys, opts...); err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFS walks fsys and registers every file carrying the template suffix.
// Nothing is registered unless every file parses and no name collides.
// A nil filesystem is a no-op.
func (s *Store) LoadFS(fsys fs.FS, opts ...LoadOption) error {
	if fsys == nil {
		return nil
	}
	cfg := &loadConfig{suffix: DefaultSuffix}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}

	var parsed []*Template
	err := fs.WalkDir(fsys, ".", func(p string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !strings.HasSuffix(p, cfg.suffix) {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("template: read %s: %w", p, err)
		}

		name := strings.TrimSuffix(p, cfg.suffix)
		if cfg.prefix != "" {
			name = path.Join(cfg.prefix, name)
		}
		t, err := New(name, string(data), cfg.parse...)
		if err != nil {
			return err
		}
		parsed = append(parsed, t)
		return nil
	})
	if err != nil {
		return err
	}
	return s.registerAll(parsed)
}
