// Package cache provides a read-through Redis cache for entity reads.
//
// Every cached key is also tracked in a per-entity index set so that a
// write to an entity can invalidate all of its cached reads at once,
// lists included. A nil Redis client disables the cache: every Get is a
// miss and every Set/Invalidate is a no-op, so the API keeps working
// without Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jiahongggg/Skyworld-UserAPI/internal/config"
)

// ErrMiss is returned by Get when the key is absent or the cache is disabled.
var ErrMiss = errors.New("cache: miss")

// Store is the invalidate-on-write entity cache.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    zerolog.Logger
}

// NewStore builds a Store. rdb may be nil, and cfg.Enabled false, in which
// case the store degrades to a pass-through.
func NewStore(cfg config.CacheConfig, rdb *redis.Client, log zerolog.Logger) *Store {
	if !cfg.Enabled {
		rdb = nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl, prefix: cfg.Prefix, log: log}
}

// Enabled reports whether the store has a live Redis client behind it.
func (s *Store) Enabled() bool { return s != nil && s.rdb != nil }

func (s *Store) key(entity, suffix string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, entity, suffix)
}

func (s *Store) indexKey(entity string) string {
	return fmt.Sprintf("%s:idx:%s", s.prefix, entity)
}

// Get unmarshals the cached value for entity/suffix into dest. Returns
// ErrMiss when absent, disabled, or unreadable; corrupt entries are
// dropped so the caller re-populates them.
func (s *Store) Get(ctx context.Context, entity, suffix string, dest any) error {
	if !s.Enabled() {
		return ErrMiss
	}
	key := s.key(entity, suffix)
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return ErrMiss
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache entry corrupt, dropping")
		s.rdb.Del(ctx, key)
		return ErrMiss
	}
	return nil
}

// Set stores a value under entity/suffix and records the key in the
// entity's index set. Failures are logged and swallowed: the cache is
// best-effort.
func (s *Store) Set(ctx context.Context, entity, suffix string, v any) {
	if !s.Enabled() {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Warn().Err(err).Str("entity", entity).Msg("cache marshal failed")
		return
	}
	key := s.key(entity, suffix)
	pipe := s.rdb.Pipeline()
	pipe.Set(ctx, key, raw, s.ttl)
	pipe.SAdd(ctx, s.indexKey(entity), key)
	// the index must outlive its members or invalidation misses keys
	pipe.Expire(ctx, s.indexKey(entity), 2*s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache write failed")
	}
}

// Invalidate removes every cached read for the entity: all id keys and
// all list keys registered in the index set.
func (s *Store) Invalidate(ctx context.Context, entity string) {
	if !s.Enabled() {
		return
	}
	idx := s.indexKey(entity)
	members, err := s.rdb.SMembers(ctx, idx).Result()
	if err != nil {
		s.log.Warn().Err(err).Str("entity", entity).Msg("cache invalidate failed")
		return
	}
	if len(members) > 0 {
		s.rdb.Del(ctx, members...)
	}
	s.rdb.Del(ctx, idx)
	s.log.Debug().Str("entity", entity).Int("keys", len(members)).Msg("cache invalidated")
}

// InvalidateKey removes a single cached read without touching the rest of
// the entity's keys.
func (s *Store) InvalidateKey(ctx context.Context, entity, suffix string) {
	if !s.Enabled() {
		return
	}
	key := s.key(entity, suffix)
	s.rdb.Del(ctx, key)
	s.rdb.SRem(ctx, s.indexKey(entity), key)
}
