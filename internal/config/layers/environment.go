package layers

import (
	"os"
	"strings"
)

// Environment reads process environment variables that start with Prefix.
// The prefix is stripped and "__" separates sections, so with the prefix
// ANNOUNCER_ the variable ANNOUNCER_APP__TEXT_TO_PRINT sets app.text_to_print.
type Environment struct {
	Prefix string
	// Environ defaults to os.Environ.
	Environ func() []string
}

func (e *Environment) Name() string {
	return "env:" + e.Prefix + "*"
}

func (e *Environment) Load() (map[string]string, error) {
	environ := e.Environ
	if environ == nil {
		environ = os.Environ
	}

	vars := make(map[string]string)
	for _, kv := range environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		vars[k] = v
	}
	return withPrefix(e.Prefix, vars), nil
}

// withPrefix keeps the entries whose key starts with prefix, case-insensitively,
// and strips it.
func withPrefix(prefix string, vars map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range vars {
		if len(k) < len(prefix) || !strings.EqualFold(k[:len(prefix)], prefix) {
			continue
		}
		key := k[len(prefix):]
		if key == "" {
			continue
		}
		out[key] = v
	}
	return out
}
