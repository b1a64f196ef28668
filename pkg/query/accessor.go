package query

import (
	"strconv"
	"strings"
)

// Resolve walks a dot-separated path (e.g. "metadata.version") through a
// nested mapping. Every intermediate value must be a mapping containing the
// next segment; anything else (a scalar, a slice, a missing key) stops the
// walk. The second return value reports whether the full path resolved.
func Resolve(record map[string]any, path string) (any, bool) {
	var current any = record
	for _, key := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// stringify renders a leaf value the way it appears in JSON output, for
// substring comparison. Comparison is never type-aware: a numeric field 10
// matches the filter value "1".
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}
