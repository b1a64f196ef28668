package query

import "strings"

// Filter returns the records satisfying every filter (logical AND).
//
// A key containing a dot is resolved through Resolve; the resolved value,
// stringified, must contain the filter value case-insensitively, and a failed
// resolution means no match. A plain key is compared against the record's
// direct field, with a missing field treated as the empty string.
//
// An empty filter map returns the input unchanged.
func Filter(records []map[string]any, filters map[string]any) []map[string]any {
	if len(filters) == 0 {
		return records
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if matchesFilters(rec, filters) {
			out = append(out, rec)
		}
	}
	return out
}

func matchesFilters(rec map[string]any, filters map[string]any) bool {
	for key, want := range filters {
		wantStr := strings.ToLower(stringify(want))
		if strings.Contains(key, ".") {
			v, ok := Resolve(rec, key)
			if !ok {
				return false
			}
			if !strings.Contains(strings.ToLower(stringify(v)), wantStr) {
				return false
			}
			continue
		}
		if !strings.Contains(strings.ToLower(stringify(rec[key])), wantStr) {
			return false
		}
	}
	return true
}
