package loader

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/msgcache"
)

// CachedLoader puts a msgcache.Cache in front of another loader.
// Empty results are not cached. Cache failures are logged and bypassed.
type CachedLoader struct {
	next   domaindb.Loader
	cache  msgcache.Cache
	logger *slog.Logger
	group  singleflight.Group
	ttl    time.Duration
}

// CachedOption configures a CachedLoader.
type CachedOption func(*CachedLoader)

// WithCacheLogger sets the logger for bypassed cache failures.
func WithCacheLogger(l *slog.Logger) CachedOption {
	return func(c *CachedLoader) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cached returns a cache-through loader. ttl follows msgcache.Cache semantics.
func Cached(next domaindb.Loader, cache msgcache.Cache, ttl time.Duration, opts ...CachedOption) *CachedLoader {
	c := &CachedLoader{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CachedLoader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	messages, err := c.cache.Get(ctx, locale, domain)
	if err == nil {
		return messages, nil
	}
	if !errors.Is(err, msgcache.ErrNotFound) {
		c.logger.WarnContext(ctx, "loader: cache read failed",
			slog.String("locale", locale),
			slog.String("domain", domain),
			slog.Any("error", err),
		)
	}

	v, err, _ := c.group.Do(msgcache.Key(locale, domain), func() (any, error) {
		messages, err := c.next.Load(ctx, locale, domain)
		if err != nil {
			return nil, err
		}
		if len(messages) > 0 {
			if err := c.cache.Set(ctx, locale, domain, messages, c.ttl); err != nil {
				c.logger.WarnContext(ctx, "loader: cache write failed",
					slog.String("locale", locale),
					slog.String("domain", domain),
					slog.Any("error", err),
				)
			}
		}
		return messages, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(domaindb.Messages), nil
}

// Invalidate removes the cached table of a locale and domain.
func (c *CachedLoader) Invalidate(ctx context.Context, locale, domain string) error {
	return c.cache.Delete(ctx, locale, domain)
}

// Purge removes every cached table.
func (c *CachedLoader) Purge(ctx context.Context) error {
	return c.cache.Clear(ctx)
}

var _ domaindb.Loader = (*CachedLoader)(nil)
