package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotConfigured   = errors.New("target folder not configured")
	ErrBoardNotFound   = errors.New("kanban board not found or is not a file")
	ErrCycleInProgress = errors.New("cycle already in progress")
	ErrInvalidSetting  = errors.New("invalid setting")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSetting
}

// BoardError represents a failed board read or write
type BoardError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *BoardError) Error() string {
	return fmt.Sprintf("cannot %s board %s: %v", e.Op, e.Path, e.Err)
}

func (e *BoardError) Unwrap() error {
	return e.Err
}
