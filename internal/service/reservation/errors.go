package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrSeatTaken           = errors.New("seat already taken")
	ErrPerformanceNotFound = errors.New("performance not found")
	ErrRateLimited         = errors.New("too many reservation attempts")
)

// RateLimitedError reports when the caller may try again.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited, retry in %s", e.RetryAfter)
}

func (e RateLimitedError) Unwrap() error {
	return ErrRateLimited
}
