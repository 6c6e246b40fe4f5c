package domaindb

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// M holds placeholder values for template substitution.
type M map[string]any

// ReplacePlaceholders substitutes {{name}} placeholders in template with values
// from placeholders. Unknown placeholders are left as is.
//
//	ReplacePlaceholders("Hello, {{name}}!", M{"name": "Ada"}) // "Hello, Ada!"
func ReplacePlaceholders(template string, placeholders M) string {
	if len(placeholders) == 0 || !strings.Contains(template, "{{") {
		return template
	}

	keys := slices.Sorted(maps.Keys(placeholders))
	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", fmt.Sprintf("%v", placeholders[key]))
	}

	return strings.NewReplacer(pairs...).Replace(template)
}

func mergePlaceholders(sets ...M) M {
	switch len(sets) {
	case 0:
		return nil
	case 1:
		return sets[0]
	}

	merged := make(M)
	for _, set := range sets {
		maps.Copy(merged, set)
	}
	return merged
}
