package main

import (
	"time"

	"github.com/dmitrymomot/intldomain/pkg/db"
	"github.com/dmitrymomot/intldomain/pkg/loader"
	"github.com/dmitrymomot/intldomain/pkg/logger"
	"github.com/dmitrymomot/intldomain/pkg/server"
)

type Config struct {
	Log    logger.Config
	HTTP   server.RunConfig
	DB     db.Config
	S3     loader.S3Config
	Stores StoresConfig
}

type StoresConfig struct {
	MessagesDir     string        `env:"MESSAGES_DIR"`
	DefaultsDir     string        `env:"DEFAULTS_DIR"`
	Locales         []string      `env:"LOCALES" envSeparator:","`
	NeededDomains   []string      `env:"NEEDED_DOMAINS" envSeparator:","`
	RefreshSchedule string        `env:"REFRESH_SCHEDULE"`
	RedisURL        string        `env:"REDIS_URL"`
	CacheTTL        time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"10000"`
	UpstreamURL     string        `env:"UPSTREAM_URL"`
	SanitizeHTML    bool          `env:"SANITIZE_HTML" envDefault:"true"`
	Migrate         bool          `env:"DATABASE_MIGRATE" envDefault:"true"`
}
