package query

// Page is the descriptor returned for one page of results.
type Page struct {
	Items      []map[string]any `json:"items"`
	Total      int              `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// Paginate slices records into the 1-based page of the given size. Pages
// beyond the end yield an empty items list, not an error. Non-positive page
// numbers or sizes are a boundary concern and are not validated here; the
// slice bounds are simply clamped.
func Paginate(records []map[string]any, page, perPage int) Page {
	total := len(records)

	start := (page - 1) * perPage
	end := start + perPage
	if start < 0 {
		start = 0
	}
	if start > total {
		start = total
	}
	if end < start {
		end = start
	}
	if end > total {
		end = total
	}

	items := make([]map[string]any, end-start)
	copy(items, records[start:end])

	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    perPage,
		TotalPages: totalPages,
	}
}
