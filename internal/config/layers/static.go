package layers

import "maps"

// Static is a fixed set of values, used for built-in defaults.
type Static struct {
	name   string
	values map[string]string
}

// NewStatic returns a Static source. The map is copied.
func NewStatic(name string, values map[string]string) *Static {
	return &Static{name: name, values: maps.Clone(values)}
}

func (s *Static) Name() string { return s.name }

func (s *Static) Load() (map[string]string, error) {
	return maps.Clone(s.values), nil
}
