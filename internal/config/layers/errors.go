package layers

import "errors"

var (
	ErrLoadSource     = errors.New("failed to load configuration source")
	ErrParseToml      = errors.New("failed to parse TOML")
	ErrParseDotEnv    = errors.New("failed to parse env file")
	ErrMalformedArg   = errors.New("command-line override must be key=value")
	ErrReadConfigFile = errors.New("failed to read config file")
)
