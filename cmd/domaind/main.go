// Command domaind serves locale message domains over HTTP.
//
// Tables are read, in order, from MESSAGES_DIR, Postgres (DATABASE_URL), S3
// (S3_BUCKET) and an upstream domaind (UPSTREAM_URL). REDIS_URL adds a shared
// second-tier cache. DEFAULTS_DIR holds {domain}.json fallback tables.
//
// "domaind import DIR" copies a messages directory into Postgres.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/intldomain/pkg/config"
	"github.com/dmitrymomot/intldomain/pkg/logger"
)

func main() {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log, logger.DefaultExtractors()...)
	defer logger.Flush(2 * time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var err error
	if len(os.Args) > 1 && os.Args[1] == "import" {
		var dir string
		if len(os.Args) > 2 {
			dir = os.Args[2]
		}
		err = runImport(ctx, cfg, log, dir)
	} else {
		err = run(ctx, cfg, log)
	}
	if err != nil {
		log.Error("domaind stopped", slog.Any("error", err))
		logger.Flush(2 * time.Second)
		cancel()
		os.Exit(1)
	}
}
