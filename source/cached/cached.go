// Package cached provides a read-through caching decorator for message
// sources. Lookups go to a key-value cache first (Redis in production, any
// KV implementation in tests); misses fall through to the wrapped source and
// the answer is written back with a TTL. Source-level misses are cached
// negatively so a missing key does not hammer the backing store.
package cached

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pgwireless/i18n"
)

// ErrCacheMiss is returned by KV implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// missSentinel marks negatively cached lookups. It cannot collide with real
// translations, which never start with a NUL byte.
const missSentinel = "\x00miss"

// DefaultTTL is the cache entry lifetime used when none is configured.
const DefaultTTL = time.Hour

// KV is the minimal cache contract the decorator needs.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Source decorates an inner source with a read-through cache.
type Source struct {
	inner i18n.Source
	kv    KV
	ttl   time.Duration
}

// Option configures the Source.
type Option func(*Source)

// WithTTL sets the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Source) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// New wraps inner with the given cache.
func New(inner i18n.Source, kv KV, opts ...Option) *Source {
	s := &Source{
		inner: inner,
		kv:    kv,
		ttl:   DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Translate implements i18n.Source. Cache failures are treated as misses so
// an unavailable cache degrades to direct source lookups.
func (s *Source) Translate(ctx context.Context, category, key, language string) (string, bool) {
	cacheKey := "i18n:" + language + ":" + category + ":" + key

	if value, err := s.kv.Get(ctx, cacheKey); err == nil {
		if value == missSentinel {
			return "", false
		}
		return value, true
	}

	translation, ok := s.inner.Translate(ctx, category, key, language)
	value := translation
	if !ok {
		value = missSentinel
	}
	// Best effort; a failed write just means the next lookup goes to the
	// inner source again.
	_ = s.kv.Set(ctx, cacheKey, value, s.ttl)

	return translation, ok
}

// SourceLanguage implements i18n.Source.
func (s *Source) SourceLanguage() string {
	return s.inner.SourceLanguage()
}

// RedisKV adapts a go-redis client to the KV contract.
type RedisKV struct {
	client redis.UniversalClient
}

// NewRedisKV wraps client, typically a *redis.Client.
func NewRedisKV(client redis.UniversalClient) *RedisKV {
	return &RedisKV{client: client}
}

// Get implements KV.
func (r *RedisKV) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCacheMiss
	}
	return value, err
}

// Set implements KV.
func (r *RedisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}
