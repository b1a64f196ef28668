package query

import "strings"

// Search returns the records where query appears as a case-insensitive
// substring anywhere in the record's nested structure: string fields are
// tested directly, mappings and sequences are descended into, and other
// scalars never match. There is no depth limit; the fixture nests profiles
// ten levels deep. An empty query returns the input unchanged.
func Search(records []map[string]any, query string) []map[string]any {
	if query == "" {
		return records
	}

	q := strings.ToLower(query)
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if containsText(rec, q) {
			out = append(out, rec)
		}
	}
	return out
}

// containsText reports whether q appears in any string reachable from v.
// q must already be lowercased.
func containsText(v any, q string) bool {
	switch t := v.(type) {
	case map[string]any:
		for _, child := range t {
			if containsText(child, q) {
				return true
			}
		}
	case []any:
		for _, child := range t {
			if containsText(child, q) {
				return true
			}
		}
	case string:
		return strings.Contains(strings.ToLower(t), q)
	}
	return false
}

// Apply runs the full query pipeline: text search first when a query is
// present, then filters on the reduced set. Both stages are independent
// predicates, so the final set is their logical AND.
func Apply(records []map[string]any, q string, filters map[string]any) []map[string]any {
	return Filter(Search(records, q), filters)
}
