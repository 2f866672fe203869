package address

import (
	"fmt"
	"strings"
)

// ParseOverrides reads `name=value` pairs, parsing each value with the
// declared type of its field. Unknown names fail here, unlike in Resolve,
// since text overrides come from a user rather than from code.
func (s Schema) ParseOverrides(pairs []string) (map[string]any, error) {
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		name, text, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("override %q is not of the form name=value", pair)
		}
		t, err := s.FieldType(name)
		if err != nil {
			return nil, err
		}
		v, err := t.Parse(text)
		if err != nil {
			return nil, fmt.Errorf("parameter %s must be %s: %w", name, t, err)
		}
		overrides[name] = v
	}
	return overrides, nil
}
