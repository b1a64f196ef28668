package api

import (
	"net/http"

	"github.com/ohler55/ojg/oj"

	"github.com/ft-manu/forethought-test-api/pkg/httputil"
	"github.com/ft-manu/forethought-test-api/pkg/query"
)

// Entity type labels attached to advanced search results.
const (
	resultTypeOrganization = "organization"
	resultTypeUser         = "user"
	resultTypeProfile      = "profile"
)

// parseFilters decodes the filters query parameter. Anything that is not
// a JSON object yields an empty filter set.
func parseFilters(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	parsed, err := oj.ParseString(raw)
	if err != nil {
		return map[string]any{}
	}
	filters, ok := parsed.(map[string]any)
	if !ok {
		return map[string]any{}
	}
	return filters
}

// handleAdvancedSearch handles GET /api/search/advanced: full-text search
// plus filters across the selected collections, results annotated with
// their entity type and paginated as one list.
func (s *Server) handleAdvancedSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	entityType := r.URL.Query().Get("type")
	if entityType == "" {
		entityType = "all"
	}
	page, perPage, _ := listParams(r)
	filters := parseFilters(r.URL.Query().Get("filters"))

	var results []map[string]any
	if entityType == "all" || entityType == "organizations" {
		results = append(results, annotate(query.Apply(s.store.OrganizationMaps(), q, filters), resultTypeOrganization)...)
	}
	if entityType == "all" || entityType == "users" {
		results = append(results, annotate(query.Apply(s.store.UserMaps(), q, filters), resultTypeUser)...)
	}
	if entityType == "all" || entityType == "profiles" {
		results = append(results, annotate(query.Apply(s.store.ProfileMaps(), q, filters), resultTypeProfile)...)
	}

	httputil.WriteOK(w, query.Paginate(results, page, perPage))
}

// annotate copies each record with its entity type label. The label wins
// over any field of the same name, so an organization's own type is
// replaced in search results.
func annotate(records []map[string]any, label string) []map[string]any {
	out := make([]map[string]any, len(records))
	for i, rec := range records {
		copied := make(map[string]any, len(rec)+1)
		for k, v := range rec {
			copied[k] = v
		}
		copied["type"] = label
		out[i] = copied
	}
	return out
}
