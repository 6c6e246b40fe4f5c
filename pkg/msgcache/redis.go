package msgcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/intldomain/pkg/domaindb"
)

// DefaultRedisPrefix namespaces message keys in a shared Redis.
const DefaultRedisPrefix = "intldomain"

// Redis is a Cache backed by Redis. Tables are stored as JSON under
// "{prefix}:{locale}:{domain}".
type Redis struct {
	client     redis.UniversalClient
	prefix     string
	defaultTTL time.Duration
}

// RedisOption configures a Redis cache.
type RedisOption func(*Redis)

// WithPrefix sets the key prefix. Default: DefaultRedisPrefix.
func WithPrefix(prefix string) RedisOption {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// WithRedisDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(r *Redis) {
		r.defaultTTL = d
	}
}

// NewRedis creates a Redis-backed cache. The client lifecycle stays with the caller.
func NewRedis(client redis.UniversalClient, opts ...RedisOption) *Redis {
	r := &Redis{
		client:     client,
		prefix:     DefaultRedisPrefix,
		defaultTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Redis) Get(ctx context.Context, locale, domain string) (domaindb.Messages, error) {
	data, err := r.client.Get(ctx, r.key(locale, domain)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return unmarshal(data)
}

func (r *Redis) Set(ctx context.Context, locale, domain string, messages domaindb.Messages, ttl time.Duration) error {
	data, err := marshal(messages)
	if err != nil {
		return err
	}

	if ttl == 0 {
		ttl = r.defaultTTL
	}

	// Redis treats 0 as "no expiration".
	return r.client.Set(ctx, r.key(locale, domain), data, max(ttl, 0)).Err()
}

func (r *Redis) Delete(ctx context.Context, locale, domain string) error {
	return r.client.Del(ctx, r.key(locale, domain)).Err()
}

// Clear removes the keys under the prefix with SCAN, or flushes the database
// when no prefix is set.
func (r *Redis) Clear(ctx context.Context) error {
	if r.prefix == "" {
		return r.client.FlushDB(ctx).Err()
	}

	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.prefix+":*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if cursor = next; cursor == 0 {
			return nil
		}
	}
}

// Close is a no-op; close the client with pkg/redis.Shutdown.
func (r *Redis) Close() error {
	return nil
}

func (r *Redis) key(locale, domain string) string {
	if r.prefix == "" {
		return Key(locale, domain)
	}
	return r.prefix + ":" + Key(locale, domain)
}

var _ Cache = (*Redis)(nil)
