package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/intldomain/pkg/db"
	"github.com/dmitrymomot/intldomain/pkg/domaindb"
	"github.com/dmitrymomot/intldomain/pkg/loader"
)

var errImportUsage = errors.New("usage: domaind import DIR (requires DATABASE_URL)")

type saver interface {
	Save(ctx context.Context, locale, domain string, messages domaindb.Messages) error
}

// runImport copies every {locale}/{domain} file under dir into Postgres.
func runImport(ctx context.Context, cfg Config, log *slog.Logger, dir string) error {
	if dir == "" || cfg.DB.ConnectionString == "" {
		return errImportUsage
	}

	pool, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool, log); err != nil {
		return err
	}

	n, err := importMessages(ctx, loader.FS(os.DirFS(dir)), loader.NewPostgres(pool))
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "messages imported", slog.Int("tables", n), slog.String("dir", dir))
	return nil
}

func importMessages(ctx context.Context, src *loader.FSLoader, dst saver) (int, error) {
	locales, err := src.Locales()
	if err != nil {
		return 0, err
	}

	var n int
	for _, locale := range locales {
		domains, err := src.Domains(locale)
		if err != nil {
			return n, err
		}
		for _, domain := range domains {
			messages, err := src.Load(ctx, locale, domain)
			if err != nil {
				return n, err
			}
			if err := dst.Save(ctx, locale, domain, messages); err != nil {
				return n, fmt.Errorf("importing %s/%s: %w", locale, domain, err)
			}
			n++
		}
	}
	return n, nil
}
