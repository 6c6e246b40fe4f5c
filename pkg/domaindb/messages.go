package domaindb

import (
	"fmt"
	"maps"
	"strings"
)

// Messages is a message table. Values are string templates or nested tables.
// A table passed to or returned from a DB is shared and must not be modified.
type Messages map[string]any

// FromMap converts a decoded document into a Messages tree.
// Nested map[string]any and map[string]string values become Messages,
// nil values are dropped and other scalars are rendered with %v.
// The result never shares maps with the input.
func FromMap(data map[string]any) Messages {
	if data == nil {
		return nil
	}

	out := make(Messages, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case nil:
			continue
		case string:
			out[key] = v
		case Messages:
			out[key] = FromMap(v)
		case map[string]any:
			out[key] = FromMap(v)
		case map[string]string:
			nested := make(Messages, len(v))
			for k, s := range v {
				nested[k] = s
			}
			out[key] = nested
		default:
			out[key] = fmt.Sprintf("%v", v)
		}
	}

	return out
}

// merge returns a new table holding every key of base overridden by over.
// Only top-level keys are merged.
func merge(base, over Messages) Messages {
	out := make(Messages, len(base)+len(over))
	maps.Copy(out, base)
	maps.Copy(out, over)
	return out
}

// lookup walks a dotted path through nested tables.
func lookup(m Messages, path string) (any, bool) {
	var current any = m

	for part := range strings.SplitSeq(path, ".") {
		var (
			next any
			ok   bool
		)

		switch node := current.(type) {
		case Messages:
			next, ok = node[part]
		case map[string]any:
			next, ok = node[part]
		case map[string]string:
			next, ok = node[part]
		default:
			return nil, false
		}

		if !ok || next == nil {
			return nil, false
		}
		current = next
	}

	return current, true
}
