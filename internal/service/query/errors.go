package query

import (
	"errors"
	"fmt"
)

var (
	ErrPlayNotFound        = errors.New("play not found")
	ErrPerformanceNotFound = errors.New("performance not found")
)

// AvailabilityInvariantError reports a performance with more tickets than
// seats in its hall.
type AvailabilityInvariantError struct {
	PerformanceID int64
	Available     int
}

func (e AvailabilityInvariantError) Error() string {
	return fmt.Sprintf("performance %d: tickets_available is %d", e.PerformanceID, e.Available)
}
