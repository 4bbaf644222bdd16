package layers

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	gotoml "github.com/pelletier/go-toml/v2"
)

// TOMLFile reads a TOML document and flattens its tables into dotted keys.
type TOMLFile struct {
	Path string
	// Optional makes a missing file produce no values instead of an error.
	Optional bool
}

func (f *TOMLFile) Name() string { return f.Path }

func (f *TOMLFile) Load() (map[string]string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if f.Optional && errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadConfigFile, err)
	}
	return ParseTOML(data)
}

// ParseTOML flattens a TOML document. Tables become key prefixes, everything
// else is rendered with fmt.Sprint.
func ParseTOML(data []byte) (map[string]string, error) {
	var doc map[string]any
	if err := gotoml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseToml, err)
	}
	out := make(map[string]string)
	flatten("", doc, out)
	return out, nil
}

func flatten(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}
