package typing

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("invalid typing config")
	// ErrBackend is matched by every *BackendError.
	ErrBackend = errors.New("keyboard backend failure")
)

// ConfigError reports an out-of-range configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, e.Field, e.Reason)
}

// Is lets errors.Is match ErrInvalidConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// BackendError wraps a failed keyboard operation.
type BackendError struct {
	Op  string
	Key string
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("keyboard %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrBackend.
func (e *BackendError) Is(target error) bool {
	return target == ErrBackend
}
