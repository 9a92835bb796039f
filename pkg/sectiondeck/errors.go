package sectiondeck

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrCancelled indicates the user left a screen (quit key, window closed).
	// This is a normal flow control error, not an infrastructure failure.
	ErrCancelled = errors.New("operation cancelled by user")

	// ErrNoPanels is returned by hosts asked to run a deck with nothing in it.
	// The controller itself accepts an empty deck.
	ErrNoPanels = errors.New("deck has no panels")

	// ErrInvalidValue is wrapped by ConfigError for out-of-range settings.
	ErrInvalidValue = errors.New("invalid value")
)

// HostError represents a failure of the surface hosting the deck (window
// creation failed, font missing, input device unreadable). Navigation never
// produces one.
type HostError struct {
	Op  string // Operation that failed (e.g., "create_window", "open_font")
	Err error  // Underlying error
}

func (e *HostError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sectiondeck: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("sectiondeck: %s", e.Op)
}

func (e *HostError) Unwrap() error {
	return e.Err
}

// NewHostError creates a new host error.
func NewHostError(op string, err error) *HostError {
	return &HostError{Op: op, Err: err}
}

// IsHostError checks if an error is a host error.
func IsHostError(err error) bool {
	var hostErr *HostError
	return errors.As(err, &hostErr)
}

// ConfigError reports a setting that cannot be used.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sectiondeck: %s=%v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func invalid(field string, value any) *ConfigError {
	return &ConfigError{Field: field, Value: value, Err: ErrInvalidValue}
}

// IsCancelled checks if an error indicates user cancellation.
func IsCancelled(err error) bool {
	return errors.Is(err, ErrCancelled)
}
