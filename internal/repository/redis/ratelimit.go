package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Attempts live in a sorted set scored by their time in milliseconds. A
// refused attempt is not recorded, so retrying early does not push the
// window further out.
//
// KEYS[1] = per-user key
// ARGV    = now_ms, window_ms, limit, attempt id
// returns {allowed, remaining, retry_ms}
const reservationWindowScript = `
local now    = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit  = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', now - window)
local used = redis.call('ZCARD', KEYS[1])

if used >= limit then
  local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
  local retry = tonumber(oldest[2]) + window - now
  if retry < 1 then retry = 1 end
  return {0, 0, retry}
end

redis.call('ZADD', KEYS[1], now, ARGV[4])
redis.call('PEXPIRE', KEYS[1], window)
return {1, limit - used - 1, 0}
`

// RateDecision is the verdict on one reservation attempt.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// ReservationLimiter bounds how many reservation attempts one user makes
// within a sliding window.
type ReservationLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	script *redis.Script
	now    func() time.Time
}

// NewReservationLimiter allows limit attempts per user per window. A
// non-positive limit disables limiting.
func NewReservationLimiter(rdb *redis.Client, limit int, window time.Duration) *ReservationLimiter {
	return &ReservationLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		script: redis.NewScript(reservationWindowScript),
		now:    time.Now,
	}
}

// Allow records an attempt by userID if it fits in the window.
func (l *ReservationLimiter) Allow(ctx context.Context, userID int64) (RateDecision, error) {
	const op = "redis.ReservationLimiter.Allow"

	if l.limit <= 0 {
		return RateDecision{Allowed: true}, nil
	}

	res, err := l.script.Run(ctx, l.rdb,
		[]string{KeyReservationRate(userID)},
		l.now().UnixMilli(), l.window.Milliseconds(), l.limit, uuid.NewString(),
	).Int64Slice()
	if err != nil {
		return RateDecision{}, fmt.Errorf("%s:%w", op, err)
	}
	if len(res) != 3 {
		return RateDecision{}, fmt.Errorf("%s: unexpected script reply %v", op, res)
	}

	return RateDecision{
		Allowed:    res[0] == 1,
		Remaining:  int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}
