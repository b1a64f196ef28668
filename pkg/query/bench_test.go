package query

import (
	"testing"

	"github.com/ft-manu/forethought-test-api/internal/fixture"
)

func benchRecords() []map[string]any {
	ds := fixture.Generate(fixture.DefaultOptions())
	records := make([]map[string]any, len(ds.Profiles))
	for i, p := range ds.Profiles {
		records[i] = p.Map()
	}
	return records
}

func BenchmarkFilterNested(b *testing.B) {
	records := benchRecords()
	filters := map[string]any{"metadata.version": "1.0.0"}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Filter(records, filters)
	}
}

func BenchmarkSearchDeep(b *testing.B) {
	records := benchRecords()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Search(records, "Level 1 data")
	}
}

func BenchmarkPaginate(b *testing.B) {
	records := benchRecords()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Paginate(records, 5, 10)
	}
}
