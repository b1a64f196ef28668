package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/ft-manu/forethought-test-api/internal/service"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
	"github.com/ft-manu/forethought-test-api/pkg/httputil"
	"github.com/ft-manu/forethought-test-api/pkg/query"
)

// decodeBody parses the request body as a JSON object.
func decodeBody(r *http.Request) (map[string]any, string) {
	var raw any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, "Invalid JSON in request body"
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, "Request body must contain valid JSON"
	}
	return obj, ""
}

// listParams extracts pagination and the remaining query params as filters.
// Unparseable pagination values fall back to the defaults.
func listParams(r *http.Request) (page, perPage int, filters map[string]any) {
	page, perPage = 1, 10
	filters = make(map[string]any)
	for key, values := range r.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "page":
			if n, err := strconv.Atoi(values[0]); err == nil {
				page = n
			}
		case "per_page":
			if n, err := strconv.Atoi(values[0]); err == nil {
				perPage = n
			}
		default:
			filters[key] = values[0]
		}
	}
	return page, perPage, filters
}

func writeServiceError(w http.ResponseWriter, serr *service.Error) {
	httputil.WriteError(w, serr.Status, serr.Message)
}

// handleRoot handles GET / with the endpoint index.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"api":     "Test API",
		"version": Version,
		"status":  "running",
		"endpoints": map[string]string{
			"organizations": "/api/organizations",
			"users":         "/api/users",
			"organization":  "/api/organizations/{id}",
			"user":          "/api/users/{id}",
			"search":        "/api/search/advanced",
			"health":        "/api/health",
			"version":       "/api/version",
			"profiles":      "/api/profiles",
			"stats":         "/api/stats",
			"batch":         "/api/batch",
		},
	})
}

// handleHealth handles GET /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// handleVersion handles GET /api/version.
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	httputil.WriteOK(w, map[string]any{
		"version":     Version,
		"build":       Build,
		"environment": Environment,
	})
}

// handleStats handles GET /api/stats with totals and breakdowns.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	byType := make(map[string]int)
	for _, org := range s.store.Organizations() {
		byType[string(org.Type)]++
	}
	byOrg := make(map[string]int)
	users := s.store.Users()
	for _, u := range users {
		byOrg[u.OrganizationID]++
	}

	httputil.WriteOK(w, map[string]any{
		"organizations": map[string]any{
			"total":   s.store.Count(entity.KindOrganization),
			"by_type": byType,
		},
		"users": map[string]any{
			"total":           len(users),
			"by_organization": byOrg,
		},
		"profiles": map[string]any{
			"total": s.store.Count(entity.KindProfile),
		},
	})
}

// list applies filtering and pagination to a record set.
func list(w http.ResponseWriter, r *http.Request, records []map[string]any) {
	page, perPage, filters := listParams(r)
	filtered := query.Filter(records, filters)
	httputil.WriteOK(w, query.Paginate(filtered, page, perPage))
}

// handleListOrganizations handles GET /api/organizations.
func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	list(w, r, s.store.OrganizationMaps())
}

// handleCreateOrganization handles POST /api/organizations.
func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	org, serr := s.svc.CreateOrganization(data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteCreated(w, org.Map())
}

// handleGetOrganization handles GET /api/organizations/{id}. The response
// embeds the organization's users and their count.
func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	org, ok := s.store.GetOrganization(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, "Organization not found")
		return
	}

	users := s.store.UsersByOrganization(org.ID)
	userMaps := make([]map[string]any, len(users))
	for i, u := range users {
		userMaps[i] = u.Map()
	}

	resp := org.Map()
	resp["users"] = userMaps
	resp["total_users"] = len(users)
	httputil.WriteOK(w, resp)
}

// handleUpdateOrganization handles PUT /api/organizations/{id}.
func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.GetOrganization(id); !ok {
		httputil.WriteNotFound(w, "Organization not found")
		return
	}
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	org, serr := s.svc.UpdateOrganization(id, data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	httputil.WriteOK(w, org.Map())
}

// handleDeleteOrganization handles DELETE /api/organizations/{id}.
func (s *Server) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if serr := s.svc.DeleteOrganization(r.PathValue("id")); serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteNoContent(w)
}

// handleListUsers handles GET /api/users.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	list(w, r, s.store.UserMaps())
}

// handleCreateUser handles POST /api/users.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	user, serr := s.svc.CreateUser(data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteCreated(w, user.Map())
}

// handleGetUser handles GET /api/users/{id}. The response embeds the
// user's organization when the reference resolves.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := s.store.GetUser(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, "User not found")
		return
	}

	resp := user.Map()
	if org, ok := s.store.GetOrganization(user.OrganizationID); ok {
		resp["organization"] = org.Map()
	}
	httputil.WriteOK(w, resp)
}

// handleUpdateUser handles PUT /api/users/{id}.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.GetUser(id); !ok {
		httputil.WriteNotFound(w, "User not found")
		return
	}
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	user, serr := s.svc.UpdateUser(id, data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	httputil.WriteOK(w, user.Map())
}

// handleDeleteUser handles DELETE /api/users/{id}.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if serr := s.svc.DeleteUser(r.PathValue("id")); serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteNoContent(w)
}

// handleListProfiles handles GET /api/profiles.
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	list(w, r, s.store.ProfileMaps())
}

// handleCreateProfile handles POST /api/profiles.
func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	profile, serr := s.svc.CreateProfile(data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteCreated(w, profile.Map())
}

// handleGetProfile handles GET /api/profiles/{id}.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, ok := s.store.GetProfile(r.PathValue("id"))
	if !ok {
		httputil.WriteNotFound(w, "Profile not found")
		return
	}
	httputil.WriteOK(w, profile.Map())
}

// handleUpdateProfile handles PUT /api/profiles/{id}.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if _, ok := s.store.GetProfile(id); !ok {
		httputil.WriteNotFound(w, "Profile not found")
		return
	}
	data, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}
	profile, serr := s.svc.UpdateProfile(id, data)
	if serr != nil {
		writeServiceError(w, serr)
		return
	}
	httputil.WriteOK(w, profile.Map())
}

// handleDeleteProfile handles DELETE /api/profiles/{id}.
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if serr := s.svc.DeleteProfile(r.PathValue("id")); serr != nil {
		writeServiceError(w, serr)
		return
	}
	s.syncEntityGauges()
	httputil.WriteNoContent(w)
}

// syncEntityGauges refreshes the per-kind entity count gauges.
func (s *Server) syncEntityGauges() {
	s.entitiesTotal.Set(float64(s.store.Count(entity.KindOrganization)), string(entity.KindOrganization))
	s.entitiesTotal.Set(float64(s.store.Count(entity.KindUser)), string(entity.KindUser))
	s.entitiesTotal.Set(float64(s.store.Count(entity.KindProfile)), string(entity.KindProfile))
}
