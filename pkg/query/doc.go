// Package query implements the generic record query engine: dot-path field
// access, substring filtering, recursive full-text search, and pagination.
//
// Records are loosely typed nested mappings (map[string]any), matching the
// JSON shape of the fixture data. All functions are pure: they never mutate
// input records and preserve their relative order. Absent or malformed
// structure is treated as "no match", never as an error.
package query
