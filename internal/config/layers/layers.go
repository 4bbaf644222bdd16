// Package layers resolves configuration from an ordered list of sources.
//
// Every source produces a flat mapping of normalized keys to raw string
// values. Resolve folds the sources left to right, so a key set by a later
// source replaces the value from an earlier one. Each resolved value keeps the
// name of the source that won.
package layers

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Source produces a partial key/value mapping.
type Source interface {
	// Name identifies the source in errors and provenance output.
	Name() string

	// Load returns the values this source provides. Keys need not be
	// normalized, Resolve does that.
	Load() (map[string]string, error)
}

// Value is a resolved configuration value and the source it came from.
type Value struct {
	Raw    string
	Source string
}

// Resolved is the merged result of all sources, keyed by normalized key.
type Resolved map[string]Value

// Resolve loads every source in order and merges them, later sources winning.
func Resolve(sources ...Source) (Resolved, error) {
	out := make(Resolved)
	for _, src := range sources {
		if src == nil {
			continue
		}
		values, err := src.Load()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadSource, src.Name(), err)
		}
		for k, v := range values {
			key := NormalizeKey(k)
			if key == "" {
				continue
			}
			out[key] = Value{Raw: v, Source: src.Name()}
		}
	}
	return out, nil
}

// Lookup returns the value for key, which is normalized first.
func (r Resolved) Lookup(key string) (Value, bool) {
	v, ok := r[NormalizeKey(key)]
	return v, ok
}

// String returns the raw value for key or the empty string.
func (r Resolved) String(key string) string {
	v, _ := r.Lookup(key)
	return v.Raw
}

// Keys returns the resolved keys in sorted order.
func (r Resolved) Keys() []string {
	return slices.Sorted(maps.Keys(r))
}

// NormalizeKey maps the spellings used by files, environment variables and
// the command line onto one key. It lower-cases, turns ":" and "__" into the
// section separator ".", and drops the remaining "_" and "-".
//
//	App:TextToPrint, app.text_to_print, APP__TEXT_TO_PRINT -> app.texttoprint
func NormalizeKey(key string) string {
	key = strings.TrimSpace(strings.ToLower(key))
	key = strings.ReplaceAll(key, "__", ".")
	key = strings.ReplaceAll(key, ":", ".")
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	return strings.Trim(key, ".")
}
