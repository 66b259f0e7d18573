package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idemLockPrefix = "LOCK:"
	idemResPrefix  = "RES:"
)

// IdempotencyStore remembers the response of a request made with an
// Idempotency-Key. A key holds either a short-lived lock while the first
// request runs, or the saved JSON response. Both carry the fingerprint of
// the request that claimed the key.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// IdempotentEntry is what a key currently holds.
type IdempotentEntry struct {
	Fingerprint string
	InFlight    bool
	Payload     string
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

func (s *IdempotencyStore) AcquireLock(ctx context.Context, key, fingerprint string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, idemLockPrefix+fingerprint, lockTTL).Result()
}

func (s *IdempotencyStore) SaveResult(ctx context.Context, key, fingerprint, jsonPayload string) error {
	return s.rdb.Set(ctx, key, idemResPrefix+fingerprint+":"+jsonPayload, s.ttl).Err()
}

// Lookup reports what key holds. ok is false for an unused key.
func (s *IdempotencyStore) Lookup(ctx context.Context, key string) (e IdempotentEntry, ok bool, err error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return IdempotentEntry{}, false, nil
	}
	if err != nil {
		return IdempotentEntry{}, false, err
	}

	if fp, found := strings.CutPrefix(v, idemLockPrefix); found {
		return IdempotentEntry{Fingerprint: fp, InFlight: true}, true, nil
	}

	if rest, found := strings.CutPrefix(v, idemResPrefix); found {
		fp, payload, found := strings.Cut(rest, ":")
		if found {
			return IdempotentEntry{Fingerprint: fp, Payload: payload}, true, nil
		}
	}

	return IdempotentEntry{}, false, fmt.Errorf("redis.IdempotencyStore.Lookup: malformed entry at %s", key)
}

func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
