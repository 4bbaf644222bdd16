package layers

import "strings"

// renamed rewrites the leading section of every key a source produces.
type renamed struct {
	Source
	sections map[string]string
}

// Rename wraps src so keys in an aliased section are reported under the
// canonical one. Keys are normalized first, and sections are matched in
// normalized form. When a source sets both spellings, the canonical key wins.
func Rename(src Source, sections map[string]string) Source {
	if src == nil {
		return nil
	}
	normalized := make(map[string]string, len(sections))
	for from, to := range sections {
		normalized[NormalizeKey(from)] = NormalizeKey(to)
	}
	return &renamed{Source: src, sections: normalized}
}

func (r *renamed) Load() (map[string]string, error) {
	values, err := r.Source.Load()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(values))
	aliased := make(map[string]string)
	for k, v := range values {
		key := NormalizeKey(k)
		section, rest, found := strings.Cut(key, ".")
		if to, ok := r.sections[section]; ok && found {
			aliased[to+"."+rest] = v
			continue
		}
		out[key] = v
	}
	for k, v := range aliased {
		if _, ok := out[k]; !ok {
			out[k] = v
		}
	}
	return out, nil
}
