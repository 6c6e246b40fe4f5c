package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/intldomain/pkg/db"
	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/health"
	"github.com/dmitrymomot/intldomain/pkg/loader"
	"github.com/dmitrymomot/intldomain/pkg/locale"
	"github.com/dmitrymomot/intldomain/pkg/msgcache"
	"github.com/dmitrymomot/intldomain/pkg/redis"
	"github.com/dmitrymomot/intldomain/pkg/refresh"
	"github.com/dmitrymomot/intldomain/pkg/server"
)

// run wires the stores, the messages DB and the HTTP server, and blocks
// until ctx is done.
func run(ctx context.Context, cfg Config, log *slog.Logger) error {
	locales, err := normalizeLocales(cfg.Stores.Locales)
	if err != nil {
		return err
	}

	checks := health.Checks{}
	var (
		hooks   []func(context.Context) error
		sources []domaindb.Loader
		purge   func(context.Context) error
	)

	if dir := cfg.Stores.MessagesDir; dir != "" {
		sources = append(sources, loader.FS(os.DirFS(dir)))
	}

	if cfg.DB.ConnectionString != "" {
		pool, err := db.Open(ctx, cfg.DB)
		if err != nil {
			return err
		}
		hooks = append(hooks, db.Shutdown(pool))
		checks["postgres"] = db.Healthcheck(pool)

		if cfg.Stores.Migrate {
			if err := db.Migrate(ctx, pool, log); err != nil {
				return runHooks(ctx, err, hooks)
			}
		}
		sources = append(sources, loader.NewPostgres(pool))
	}

	if cfg.S3.Bucket != "" {
		s3, err := loader.NewS3(cfg.S3)
		if err != nil {
			return runHooks(ctx, err, hooks)
		}
		sources = append(sources, s3)
	}

	if cfg.Stores.UpstreamURL != "" {
		sources = append(sources, loader.HTTP(cfg.Stores.UpstreamURL))
	}

	var source domaindb.Loader
	if len(sources) > 0 {
		source = loader.Chain(sources...)
		if cfg.Stores.SanitizeHTML {
			source = loader.Sanitize(source, bluemonday.UGCPolicy())
		}
	}

	var cache msgcache.Cache
	switch {
	case source == nil:
	case cfg.Stores.RedisURL != "":
		client, err := redis.Open(ctx, cfg.Stores.RedisURL)
		if err != nil {
			return runHooks(ctx, err, hooks)
		}
		hooks = append(hooks, redis.Shutdown(client))
		checks["redis"] = redis.Healthcheck(client)
		cache = msgcache.NewRedis(client)
	case cfg.S3.Bucket != "" || cfg.Stores.UpstreamURL != "":
		mem := msgcache.NewMemory(msgcache.WithMaxEntries(cfg.Stores.CacheMaxEntries))
		hooks = append(hooks, func(context.Context) error { return mem.Close() })
		cache = mem
	}
	if cache != nil {
		cached := loader.Cached(source, cache, cfg.Stores.CacheTTL, loader.WithCacheLogger(log))
		source = cached
		purge = cached.Purge
	}

	opts := []domaindb.Option{
		domaindb.WithLogger(log),
		domaindb.WithNeededDomains(cfg.Stores.NeededDomains...),
	}
	if source != nil {
		opts = append(opts, domaindb.WithLoader(source))
	}
	if dir := cfg.Stores.DefaultsDir; dir != "" {
		opts = append(opts, domaindb.WithDefaultsFS(os.DirFS(dir)))
	}

	messages, err := domaindb.New(opts...)
	if err != nil {
		return runHooks(ctx, fmt.Errorf("creating messages db: %w", err), hooks)
	}

	for _, tag := range locales {
		if _, err := messages.LoadDomains(ctx, tag); err != nil {
			log.WarnContext(ctx, "preload failed", slog.String("locale", tag), slog.Any("error", err))
		}
	}
	checks["messages"] = health.Warm(messages, locales...)

	if schedule := cfg.Stores.RefreshSchedule; schedule != "" {
		m, err := refresh.New(messages,
			refresh.WithSchedule(schedule),
			refresh.WithLocales(locales...),
			refresh.WithPurge(purge),
			refresh.WithLogger(log),
		)
		if err != nil {
			return runHooks(ctx, err, hooks)
		}
		if err := m.Start(ctx); err != nil {
			return runHooks(ctx, err, hooks)
		}
		hooks = append([]func(context.Context) error{m.Shutdown()}, hooks...)
	}

	srv, err := server.New(messages,
		server.WithLogger(log),
		server.WithChecks(checks),
		server.WithLocales(locales...),
		server.WithOnClear(purge),
	)
	if err != nil {
		return runHooks(ctx, err, hooks)
	}

	runCfg := cfg.HTTP
	runCfg.Logger = log
	runCfg.ShutdownHooks = append(runCfg.ShutdownHooks, hooks...)
	return server.Run(ctx, srv, runCfg)
}

func normalizeLocales(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, raw := range in {
		tag, err := locale.Normalize(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, tag)
	}
	return out, nil
}

// runHooks releases already opened resources when startup fails.
func runHooks(ctx context.Context, cause error, hooks []func(context.Context) error) error {
	for _, hook := range hooks {
		_ = hook(context.WithoutCancel(ctx))
	}
	return cause
}
