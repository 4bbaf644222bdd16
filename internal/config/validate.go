package config

import "fmt"

// Validate checks ranges and enum values that FromResolved does not.
func (c *Config) Validate() error {
	var errz []error

	if c.App.Interval <= 0 {
		errz = append(errz, fmt.Errorf("%w: %s", ErrInvalidInterval, c.App.Interval))
	}
	if !c.Logging.Level.IsValid() {
		errz = append(errz, fmt.Errorf("unknown log level: %s", c.Logging.Level))
	}
	if !c.Logging.Format.IsValid() {
		errz = append(errz, fmt.Errorf("unknown log format: %s", c.Logging.Format))
	}

	if len(errz) > 0 {
		return joinWith(ErrFailedToValidateConfig, errz)
	}
	return nil
}
