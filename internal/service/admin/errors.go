package admin

import (
	"errors"
)

var (
	ErrHallConflict        = errors.New("theatre hall with this name already exists")
	ErrUnknownReference    = errors.New("referenced genre, actor, play or hall does not exist")
	ErrPlayNotFound        = errors.New("play not found")
	ErrPerformanceNotFound = errors.New("performance not found")
)
