package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// Querier is the subset of *pgxpool.Pool used by PostgresLoader.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresLoader reads message tables from the message_domains table
// created by pkg/db migrations.
type PostgresLoader struct {
	db Querier
}

// NewPostgres returns a loader over db.
func NewPostgres(db Querier) *PostgresLoader {
	return &PostgresLoader{db: db}
}

const (
	selectMessages = `SELECT messages FROM message_domains WHERE locale = $1 AND domain = $2`

	upsertMessages = `INSERT INTO message_domains (locale, domain, messages, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (locale, domain) DO UPDATE SET messages = EXCLUDED.messages, updated_at = now()`

	deleteMessages = `DELETE FROM message_domains WHERE locale = $1 AND domain = $2`
)

// Load returns (nil, nil) when no row exists for the pair.
func (l *PostgresLoader) Load(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	var raw []byte
	err := l.db.QueryRow(ctx, selectMessages, locale, domain).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s/%s: %w", ErrFetchFailed, locale, domain, err)
	}

	messages, err := domaindb.Decode(".json", raw)
	if err != nil {
		return nil, fmt.Errorf("decoding %s/%s: %w", locale, domain, err)
	}
	return messages, nil
}

// Save stores the table of a locale and domain, replacing any previous one.
func (l *PostgresLoader) Save(ctx context.Context, locale, domain string, messages domaindb.Messages) error {
	if !validKey(locale, domain) {
		return fmt.Errorf("%w: %q/%q", ErrInvalidKey, locale, domain)
	}

	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", locale, domain, err)
	}

	if _, err := l.db.Exec(ctx, upsertMessages, locale, domain, data); err != nil {
		return fmt.Errorf("saving %s/%s: %w", locale, domain, err)
	}
	return nil
}

// Delete removes the table of a locale and domain. Missing rows are not an error.
func (l *PostgresLoader) Delete(ctx context.Context, locale, domain string) error {
	if _, err := l.db.Exec(ctx, deleteMessages, locale, domain); err != nil {
		return fmt.Errorf("deleting %s/%s: %w", locale, domain, err)
	}
	return nil
}

var _ domaindb.Loader = (*PostgresLoader)(nil)
