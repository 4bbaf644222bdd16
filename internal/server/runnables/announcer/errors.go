package announcer

import "errors"

var (
	ErrInvalidInterval = errors.New("announcement interval must be greater than zero")
	ErrStartTimer      = errors.New("failed to start announcement timer")
)
