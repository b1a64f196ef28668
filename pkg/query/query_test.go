package query

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	rec := map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "x"},
		},
		"scalar": map[string]any{"b": "leaf"},
	}

	tests := []struct {
		name  string
		path  string
		want  any
		found bool
	}{
		{"three levels deep", "a.b.c", "x", true},
		{"missing leaf", "a.b.z", nil, false},
		{"intermediate mapping", "a.b", map[string]any{"c": "x"}, true},
		{"cannot descend into scalar", "scalar.b.c", nil, false},
		{"missing root", "nope.b", nil, false},
		{"single segment", "scalar", map[string]any{"b": "leaf"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(rec, tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func sampleRecords() []map[string]any {
	recs := make([]map[string]any, 0, 10)
	for i := 1; i <= 10; i++ {
		recs = append(recs, map[string]any{
			"id":   fmt.Sprintf("ORG%03d", i),
			"name": fmt.Sprintf("Test Organization %d", i),
			"type": "test",
			"metadata": map[string]any{
				"created_at": "2024-01-01T00:00:00Z",
				"updated_at": "2024-01-01T00:00:00Z",
				"version":    "1.0.0",
			},
		})
	}
	return recs
}

func TestFilter(t *testing.T) {
	recs := sampleRecords()

	t.Run("empty filter returns input unchanged", func(t *testing.T) {
		got := Filter(recs, nil)
		assert.Equal(t, recs, got)
	})

	t.Run("nested path matches all generated organizations", func(t *testing.T) {
		got := Filter(recs, map[string]any{"metadata.version": "1.0.0"})
		require.Len(t, got, 10)
		// Order preserved.
		for i, rec := range got {
			assert.Equal(t, recs[i]["id"], rec["id"])
		}
	})

	t.Run("logical AND across keys", func(t *testing.T) {
		got := Filter(recs, map[string]any{
			"name":             "Organization 3",
			"metadata.version": "1.0.0",
		})
		require.Len(t, got, 1)
		assert.Equal(t, "ORG003", got[0]["id"])
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		got := Filter(recs, map[string]any{"name": "tEsT oRg"})
		assert.Len(t, got, 10)
	})

	t.Run("missing plain field means empty string", func(t *testing.T) {
		got := Filter(recs, map[string]any{"nonexistent": "x"})
		assert.Empty(t, got)
		// An empty expected value matches the empty string.
		got = Filter(recs, map[string]any{"nonexistent": ""})
		assert.Len(t, got, 10)
	})

	t.Run("unresolvable nested path means no match", func(t *testing.T) {
		got := Filter(recs, map[string]any{"metadata.missing": ""})
		assert.Empty(t, got)
	})

	t.Run("numeric field matches substring of its rendering", func(t *testing.T) {
		recs := []map[string]any{{"count": float64(10)}}
		assert.Len(t, Filter(recs, map[string]any{"count": "1"}), 1)
		assert.Empty(t, Filter(recs, map[string]any{"count": "2"}))
	})

	t.Run("idempotent", func(t *testing.T) {
		filters := map[string]any{"name": "Organization 1"}
		once := Filter(recs, filters)
		twice := Filter(once, filters)
		assert.Equal(t, once, twice)
	})

	t.Run("does not mutate input", func(t *testing.T) {
		before := len(recs)
		_ = Filter(recs, map[string]any{"name": "Organization 2"})
		assert.Len(t, recs, before)
		assert.Equal(t, "ORG001", recs[0]["id"])
	})
}

func deepProfile(depth int) map[string]any {
	if depth == 1 {
		return map[string]any{
			"data": fmt.Sprintf("Level %d data", depth),
			"metadata": map[string]any{
				"created_at": "2024-01-01T00:00:00Z",
				"updated_at": "2024-01-01T00:00:00Z",
				"version":    "1.0.0",
			},
		}
	}
	return map[string]any{
		fmt.Sprintf("level%d", depth): deepProfile(depth - 1),
		"metadata": map[string]any{
			"created_at": "2024-01-01T00:00:00Z",
			"updated_at": "2024-01-01T00:00:00Z",
			"version":    "1.0.0",
		},
	}
}

func TestSearch(t *testing.T) {
	t.Run("empty query returns input unchanged", func(t *testing.T) {
		recs := sampleRecords()
		assert.Equal(t, recs, Search(recs, ""))
	})

	t.Run("exact name match", func(t *testing.T) {
		recs := []map[string]any{
			{"id": "USER001_001", "name": "Test User 1-1"},
			{"id": "USER001_002", "name": "Test User 1-2"},
		}
		got := Search(recs, "Test User 1-1")
		require.Len(t, got, 1)
		assert.Equal(t, "USER001_001", got[0]["id"])
	})

	t.Run("finds value at the deepest nesting level", func(t *testing.T) {
		recs := []map[string]any{deepProfile(10)}
		assert.Len(t, Search(recs, "Level 1 data"), 1)
	})

	t.Run("descends into sequences", func(t *testing.T) {
		recs := []map[string]any{
			{"tags": []any{"alpha", map[string]any{"inner": "needle"}}},
		}
		assert.Len(t, Search(recs, "needle"), 1)
	})

	t.Run("non-string scalars never match", func(t *testing.T) {
		recs := []map[string]any{{"count": float64(42)}}
		assert.Empty(t, Search(recs, "42"))
	})

	t.Run("no matches yields empty result", func(t *testing.T) {
		got := Search(sampleRecords(), "NonexistentXYZ")
		assert.Empty(t, got)
		page := Paginate(got, 1, 10)
		assert.Equal(t, 0, page.Total)
	})

	t.Run("case-insensitive", func(t *testing.T) {
		recs := sampleRecords()
		assert.Len(t, Search(recs, "test organization"), 10)
	})
}

func TestApply(t *testing.T) {
	recs := sampleRecords()
	got := Apply(recs, "Organization 1", map[string]any{"metadata.version": "1.0.0"})
	// "Organization 1" matches 1 and 10.
	require.Len(t, got, 2)
	assert.Equal(t, "ORG001", got[0]["id"])
	assert.Equal(t, "ORG010", got[1]["id"])
}

func TestPaginate(t *testing.T) {
	recs := sampleRecords()

	t.Run("page descriptor", func(t *testing.T) {
		page := Paginate(recs, 1, 3)
		assert.Equal(t, 10, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 3, page.PerPage)
		assert.Equal(t, 4, page.TotalPages)
		assert.Len(t, page.Items, 3)
	})

	t.Run("final page is shorter", func(t *testing.T) {
		page := Paginate(recs, 4, 3)
		assert.Len(t, page.Items, 1)
		assert.Equal(t, "ORG010", page.Items[0]["id"])
	})

	t.Run("out-of-range page yields empty items", func(t *testing.T) {
		page := Paginate(recs, 99, 3)
		assert.NotNil(t, page.Items)
		assert.Empty(t, page.Items)
		assert.Equal(t, 10, page.Total)
	})

	t.Run("concatenating all pages reconstructs the sequence", func(t *testing.T) {
		perPage := 3
		first := Paginate(recs, 1, perPage)
		var all []map[string]any
		for p := 1; p <= first.TotalPages; p++ {
			all = append(all, Paginate(recs, p, perPage).Items...)
		}
		assert.Equal(t, recs, all)
	})

	t.Run("empty input", func(t *testing.T) {
		page := Paginate(nil, 1, 10)
		assert.Equal(t, 0, page.Total)
		assert.Equal(t, 0, page.TotalPages)
		assert.Empty(t, page.Items)
	})
}
