package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a thin JSON read-model cache over Redis. Cached entries are
// keyed with an integer version counter; bumping the counter after a
// ledger mutation orphans every stale entry at once, so no key
// enumeration is needed. A nil Store is a valid no-op cache.
type Store struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.rdb == nil {
		return false
	}
	val, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(val), dest) == nil
}

func (s *Store) Set(ctx context.Context, key string, val interface{}, ttl time.Duration) {
	if s == nil || s.rdb == nil {
		return
	}
	if data, err := json.Marshal(val); err == nil {
		_ = s.rdb.Set(ctx, key, data, ttl).Err()
	}
}

// Bump advances a version counter. Best-effort, like Set.
func (s *Store) Bump(ctx context.Context, key string) {
	if s == nil || s.rdb == nil {
		return
	}
	_ = s.rdb.Incr(ctx, key).Err()
}

// Version reads a version counter, zero when unset or unreachable.
func (s *Store) Version(ctx context.Context, key string) int64 {
	if s == nil || s.rdb == nil {
		return 0
	}
	v, err := s.rdb.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}
