package layers

import (
	"fmt"
	"strings"
)

// CommandLine holds key=value overrides given on the command line. A leading
// "--" or "/" on the key is accepted and ignored. When a key is given more
// than once the last occurrence wins.
type CommandLine struct {
	Args []string
}

func (c *CommandLine) Name() string { return "command-line" }

func (c *CommandLine) Load() (map[string]string, error) {
	out := make(map[string]string, len(c.Args))
	for _, arg := range c.Args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimLeft(k, "-/")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: %q", ErrMalformedArg, arg)
		}
		out[NormalizeKey(k)] = v
	}
	return out, nil
}
