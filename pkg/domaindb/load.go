package domaindb

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// LoadMessages returns the messages of domain for locale, fetching them
// through the loader on first use.
//
// A cached table is returned without calling the loader. Without a loader the
// domain defaults are returned (not cached), or ErrLoaderMissing when there are
// none. Concurrent calls for the same pair share one loader call. A loaded
// table is merged over the domain defaults; an empty load falls back to the
// defaults or fails with ErrUnknownDomain. Loader errors are returned as is
// and nothing is cached.
//
// Cancelling ctx stops the wait, not the shared load.
func (db *DB) LoadMessages(ctx context.Context, locale, domain string) (Messages, error) {
	db.mu.RLock()
	if messages, ok := db.locales[locale][domain]; ok {
		db.mu.RUnlock()
		return messages, nil
	}
	loader := db.loader
	generation := db.generation
	defaults := db.defaults[domain]
	db.mu.RUnlock()

	if loader == nil {
		if defaults != nil && !db.strict {
			return defaults, nil
		}
		return nil, fmt.Errorf("%w and cannot find domain: %s", ErrLoaderMissing, domain)
	}

	key := flightKey(generation, locale, domain)
	ch := db.flights.DoChan(key, func() (any, error) {
		return db.fetch(context.WithoutCancel(ctx), loader, generation, locale, domain)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(Messages), nil
	}
}

// LoadDomains loads every needed domain for locale concurrently.
// Results follow NeededDomains order. The first failure is returned.
func (db *DB) LoadDomains(ctx context.Context, locale string) ([]Messages, error) {
	domains := db.NeededDomains()
	results := make([]Messages, len(domains))

	g, gctx := errgroup.WithContext(ctx)
	for i, domain := range domains {
		g.Go(func() error {
			messages, err := db.LoadMessages(gctx, locale, domain)
			if err != nil {
				return err
			}
			results[i] = messages
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// SetLocale loads every needed domain for locale and returns a view bound to it.
func (db *DB) SetLocale(ctx context.Context, locale string) (*Localizer, error) {
	if _, err := db.LoadDomains(ctx, locale); err != nil {
		return nil, err
	}
	return &Localizer{db: db, locale: locale}, nil
}

func (db *DB) fetch(ctx context.Context, loader Loader, generation uint64, locale, domain string) (Messages, error) {
	// A previous flight may have completed between the cache check and this one.
	db.mu.RLock()
	if messages, ok := db.locales[locale][domain]; ok {
		db.mu.RUnlock()
		return messages, nil
	}
	db.mu.RUnlock()

	start := time.Now()
	loaded, err := loader.Load(ctx, locale, domain)
	if err != nil {
		db.logger.WarnContext(ctx, "domaindb: load failed",
			slog.String("locale", locale),
			slog.String("domain", domain),
			slog.Any("error", err),
		)
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	defaults := db.defaults[domain]

	var messages Messages
	switch {
	case len(loaded) == 0:
		if defaults == nil {
			return nil, fmt.Errorf("%w: locale %s, domain %s", ErrUnknownDomain, locale, domain)
		}
		messages = defaults
	case defaults != nil:
		messages = merge(defaults, FromMap(loaded))
	default:
		messages = FromMap(loaded)
	}

	if db.generation != generation {
		db.logger.DebugContext(ctx, "domaindb: discarding load finished after clear",
			slog.String("locale", locale),
			slog.String("domain", domain),
		)
		return messages, nil
	}

	domains, ok := db.locales[locale]
	if !ok {
		domains = make(map[string]Messages)
		db.locales[locale] = domains
	}
	domains[domain] = messages

	db.logger.DebugContext(ctx, "domaindb: domain loaded",
		slog.String("locale", locale),
		slog.String("domain", domain),
		slog.Int("keys", len(messages)),
		slog.Duration("duration", time.Since(start)),
	)

	return messages, nil
}

func flightKey(generation uint64, locale, domain string) string {
	return strconv.FormatUint(generation, 10) + "\x00" + locale + "\x00" + domain
}
