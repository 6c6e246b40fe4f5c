package msgcache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// Cache stores resolved message tables keyed by locale and domain.
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: entry never expires
type Cache interface {
	// Get returns ErrNotFound if the entry does not exist or has expired.
	Get(ctx context.Context, locale, domain string) (domaindb.Messages, error)

	Set(ctx context.Context, locale, domain string, messages domaindb.Messages, ttl time.Duration) error

	Delete(ctx context.Context, locale, domain string) error

	// Clear removes every entry of this cache.
	Clear(ctx context.Context) error

	Close() error
}

// Key returns the storage key of a locale and domain pair.
func Key(locale, domain string) string {
	return locale + ":" + domain
}

func marshal(messages domaindb.Messages) ([]byte, error) {
	data, err := json.Marshal(messages)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func unmarshal(data []byte) (domaindb.Messages, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Join(ErrUnmarshal, err)
	}
	return domaindb.FromMap(raw), nil
}
