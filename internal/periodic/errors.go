package periodic

import "errors"

var (
	ErrInvalidInterval = errors.New("interval must be greater than zero")
	ErrNilAction       = errors.New("action must not be nil")
	ErrClosed          = errors.New("timer is closed")
)
