// Package refresh periodically drops cached message tables and preloads them
// again, so edits made in the message store reach a long-running process.
//
//	m, err := refresh.New(db,
//		refresh.WithSchedule("*/15 * * * *"),
//		refresh.WithLocales("en-US", "nl-NL"),
//		refresh.WithPurge(cached.Purge),
//	)
//	_ = m.Start(ctx)
//	defer m.Stop(ctx)
package refresh

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// Manager runs refreshes on a cron schedule.
type Manager struct {
	db       *domaindb.DB
	logger   *slog.Logger
	schedule cron.Schedule
	expr     string
	locales  []string
	purge    []func(context.Context) error
	timeout  time.Duration

	mu      sync.Mutex
	cron    *cron.Cron
	started bool
}

// Option configures a Manager.
type Option func(*Manager) error

// WithSchedule sets a standard five-field cron expression. Default: hourly.
func WithSchedule(expr string) Option {
	return func(m *Manager) error {
		schedule, err := parseCronSchedule(expr)
		if err != nil {
			return fmt.Errorf("%w %q: %w", ErrInvalidCron, expr, err)
		}
		m.schedule = schedule
		m.expr = expr
		return nil
	}
}

// WithLocales sets the locales preloaded after each clear.
func WithLocales(locales ...string) Option {
	return func(m *Manager) error {
		m.locales = append(m.locales, locales...)
		return nil
	}
}

// WithPurge adds a function run before the DB is cleared, typically the
// Purge method of a second-tier cache.
func WithPurge(fn func(context.Context) error) Option {
	return func(m *Manager) error {
		if fn != nil {
			m.purge = append(m.purge, fn)
		}
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) error {
		if l != nil {
			m.logger = l
		}
		return nil
	}
}

// WithTimeout bounds a single scheduled refresh. Default: 1 minute.
func WithTimeout(d time.Duration) Option {
	return func(m *Manager) error {
		if d > 0 {
			m.timeout = d
		}
		return nil
	}
}

// New creates a stopped Manager.
func New(db *domaindb.DB, opts ...Option) (*Manager, error) {
	if db == nil {
		return nil, ErrDBRequired
	}

	m := &Manager{
		db:      db,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		timeout: time.Minute,
	}
	for _, opt := range append([]Option{WithSchedule("@hourly")}, opts...) {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Refresh purges secondary caches, clears the DB and preloads every locale.
// Preload failures are collected; the remaining locales are still loaded.
func (m *Manager) Refresh(ctx context.Context) error {
	start := time.Now()

	var errs []error
	for _, purge := range m.purge {
		if err := purge(ctx); err != nil {
			errs = append(errs, fmt.Errorf("purge: %w", err))
		}
	}

	m.db.ClearMessages()

	for _, locale := range m.locales {
		if _, err := m.db.LoadDomains(ctx, locale); err != nil {
			errs = append(errs, fmt.Errorf("preload %s: %w", locale, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		m.logger.WarnContext(ctx, "refresh completed with errors", slog.Any("error", err))
		return err
	}

	m.logger.InfoContext(ctx, "messages refreshed",
		slog.Int("locales", len(m.locales)),
		slog.Duration("duration", time.Since(start)),
	)
	return nil
}

// Start schedules refreshes. ctx bounds the scheduled runs.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return ErrAlreadyStarted
	}

	c := cron.New()
	c.Schedule(m.schedule, cron.FuncJob(func() {
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
		defer cancel()
		_ = m.Refresh(runCtx)
	}))
	c.Start()

	m.cron = c
	m.started = true
	m.logger.InfoContext(ctx, "refresh scheduled", slog.String("schedule", m.expr))
	return nil
}

// Stop unschedules refreshes and waits for a running one, up to ctx.
func (m *Manager) Stop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		return ErrNotStarted
	}

	done := m.cron.Stop()
	m.started = false

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Next returns the next scheduled run after t.
func (m *Manager) Next(t time.Time) time.Time {
	return m.schedule.Next(t)
}

// Shutdown adapts Stop to a shutdown hook.
func (m *Manager) Shutdown() func(context.Context) error {
	return func(ctx context.Context) error {
		return m.Stop(ctx)
	}
}

func parseCronSchedule(expr string) (cron.Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	return parser.Parse(expr)
}
