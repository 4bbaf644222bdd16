package config

import (
	"errors"
	"fmt"
)

var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
	ErrInvalidInterval        = errors.New("interval must be greater than zero")
)

// joinWith wraps the joined errz under sentinel.
func joinWith(sentinel error, errz []error) error {
	return fmt.Errorf("%w: %w", sentinel, errors.Join(errz...))
}
