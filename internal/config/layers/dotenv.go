package layers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DotEnvFile reads KEY=value pairs from a .env file. Only keys carrying
// Prefix are used, with the prefix removed, so the file follows the same
// naming as the process environment.
type DotEnvFile struct {
	Path     string
	Prefix   string
	Optional bool
}

func (f *DotEnvFile) Name() string { return f.Path }

func (f *DotEnvFile) Load() (map[string]string, error) {
	if _, err := os.Stat(f.Path); err != nil {
		if f.Optional && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadConfigFile, err)
	}

	env, err := godotenv.Read(f.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseDotEnv, err)
	}
	return withPrefix(f.Prefix, env), nil
}
