package domaindb

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"slices"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader fetches the messages of one domain for one locale.
// A nil table with a nil error means the loader has no messages for the pair.
type Loader interface {
	Load(ctx context.Context, locale, domain string) (Messages, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, locale, domain string) (Messages, error)

// Load calls f(ctx, locale, domain).
func (f LoaderFunc) Load(ctx context.Context, locale, domain string) (Messages, error) {
	return f(ctx, locale, domain)
}

// DB caches message domains per locale on top of a table of default messages.
// It is safe for concurrent use.
type DB struct {
	loader            Loader
	logger            *slog.Logger
	missingKeyHandler func(locale, domain, path string)

	// Default messages per domain, used as merge base and fallback.
	defaults map[string]Messages

	// Resolved tables: locale -> domain -> messages.
	locales map[string]map[string]Messages

	// Needed domain ids in registration order.
	needed    []string
	neededSet map[string]struct{}

	// In-flight loads keyed by generation, locale and domain.
	flights singleflight.Group

	// Bumped by ClearMessages so loads started earlier do not repopulate the cache.
	generation uint64

	mu sync.RWMutex

	strict bool
}

// Option configures a DB during construction.
type Option func(*DB) error

// New creates a DB with the given options.
func New(opts ...Option) (*DB, error) {
	db := &DB{
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults:  make(map[string]Messages),
		locales:   make(map[string]map[string]Messages),
		neededSet: make(map[string]struct{}),
	}

	for _, opt := range opts {
		if err := opt(db); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return db, nil
}

// WithLoader sets the loader used to fetch locale-specific messages.
func WithLoader(l Loader) Option {
	return func(db *DB) error {
		db.loader = l
		return nil
	}
}

// WithLoaderFunc sets a plain function as the loader.
func WithLoaderFunc(fn func(ctx context.Context, locale, domain string) (Messages, error)) Option {
	return func(db *DB) error {
		if fn == nil {
			db.loader = nil
			return nil
		}
		db.loader = LoaderFunc(fn)
		return nil
	}
}

// WithDefaults registers default messages for a domain.
func WithDefaults(domain string, messages Messages) Option {
	return func(db *DB) error {
		if domain == "" {
			return ErrEmptyDomain
		}
		db.defaults[domain] = FromMap(messages)
		return nil
	}
}

// WithDefaultsFS registers default messages from the files at the root of fsys.
// Each {domain}.json, {domain}.yaml or {domain}.yml file becomes the defaults of
// the domain named after it. Directories and other files are ignored.
func WithDefaultsFS(fsys fs.FS) Option {
	return func(db *DB) error {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return fmt.Errorf("reading defaults dir: %w", err)
		}

		for _, entry := range entries {
			name := entry.Name()
			if entry.IsDir() || !IsMessagesFile(name) {
				continue
			}

			data, err := fs.ReadFile(fsys, name)
			if err != nil {
				return fmt.Errorf("reading %q: %w", name, err)
			}

			ext := path.Ext(name)
			messages, err := Decode(ext, data)
			if err != nil {
				return fmt.Errorf("parsing %q: %w", name, err)
			}

			db.defaults[strings.TrimSuffix(name, ext)] = messages
		}

		return nil
	}
}

// WithNeededDomains registers domains to preload with LoadDomains.
func WithNeededDomains(domains ...string) Option {
	return func(db *DB) error {
		for _, domain := range domains {
			if domain == "" {
				return ErrEmptyDomain
			}
			db.addNeeded(domain)
		}
		return nil
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(db *DB) error {
		if l != nil {
			db.logger = l
		}
		return nil
	}
}

// WithMissingKeyHandler sets a handler called when a formatting adapter
// cannot resolve a message path.
func WithMissingKeyHandler(fn func(locale, domain, path string)) Option {
	return func(db *DB) error {
		db.missingKeyHandler = fn
		return nil
	}
}

// WithStrictLoader makes LoadMessages fail with ErrLoaderMissing whenever no
// loader is configured, even if default messages exist for the domain.
func WithStrictLoader() Option {
	return func(db *DB) error {
		db.strict = true
		return nil
	}
}

// RegisterDefault sets the default messages of a domain, replacing previous ones.
// Tables already resolved for a locale are not affected.
func (db *DB) RegisterDefault(domain string, messages Messages) {
	table := FromMap(messages)

	db.mu.Lock()
	defer db.mu.Unlock()
	db.defaults[domain] = table
}

// RegisterNeededDomain marks a domain to be loaded by LoadDomains. Idempotent.
func (db *DB) RegisterNeededDomain(domain string) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.addNeeded(domain)
}

// NeededDomains returns the needed domain ids in registration order.
func (db *DB) NeededDomains() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Clone(db.needed)
}

// Locales returns the sorted locales that have at least one resolved domain.
func (db *DB) Locales() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]string, 0, len(db.locales))
	for locale, domains := range db.locales {
		if len(domains) > 0 {
			out = append(out, locale)
		}
	}
	slices.Sort(out)
	return out
}

// Defaults returns the sorted ids of domains with default messages.
func (db *DB) Defaults() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return slices.Sorted(maps.Keys(db.defaults))
}

// ClearMessages drops every resolved locale table. Defaults and needed
// domains are kept. Loads in flight complete for their callers but are not cached.
func (db *DB) ClearMessages() {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.locales = make(map[string]map[string]Messages)
	db.generation++

	db.logger.Debug("domaindb: messages cleared", slog.Uint64("generation", db.generation))
}

// addNeeded must be called with the write lock held or during construction.
func (db *DB) addNeeded(domain string) {
	if _, ok := db.neededSet[domain]; ok {
		return
	}
	db.neededSet[domain] = struct{}{}
	db.needed = append(db.needed, domain)
}
