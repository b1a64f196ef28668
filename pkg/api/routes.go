// Route registration for the API server.

package api

import (
	"net/http"
)

// registerRoutes sets up all routes with their auth and rate limit class.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// Public meta endpoints
	mux.HandleFunc("GET /{$}", s.limited(s.rootLimiter, "root", s.handleRoot))
	mux.HandleFunc("GET /api/health", s.limited(s.metaLimiter, "meta", s.handleHealth))
	mux.HandleFunc("GET /api/version", s.limited(s.metaLimiter, "meta", s.handleVersion))
	mux.HandleFunc("GET /api/openapi.json", s.handleOpenAPI)
	mux.HandleFunc("GET /api/docs", s.handleDocs)
	mux.Handle("GET /metrics", s.registry.Handler())

	// Organizations
	mux.HandleFunc("GET /api/organizations", s.crud(s.handleListOrganizations))
	mux.HandleFunc("POST /api/organizations", s.crud(s.handleCreateOrganization))
	mux.HandleFunc("GET /api/organizations/{id}", s.crud(s.handleGetOrganization))
	mux.HandleFunc("PUT /api/organizations/{id}", s.crud(s.handleUpdateOrganization))
	mux.HandleFunc("DELETE /api/organizations/{id}", s.crud(s.handleDeleteOrganization))

	// Users
	mux.HandleFunc("GET /api/users", s.crud(s.handleListUsers))
	mux.HandleFunc("POST /api/users", s.crud(s.handleCreateUser))
	mux.HandleFunc("GET /api/users/{id}", s.crud(s.handleGetUser))
	mux.HandleFunc("PUT /api/users/{id}", s.crud(s.handleUpdateUser))
	mux.HandleFunc("DELETE /api/users/{id}", s.crud(s.handleDeleteUser))

	// Profiles
	mux.HandleFunc("GET /api/profiles", s.crud(s.handleListProfiles))
	mux.HandleFunc("POST /api/profiles", s.crud(s.handleCreateProfile))
	mux.HandleFunc("GET /api/profiles/{id}", s.crud(s.handleGetProfile))
	mux.HandleFunc("PUT /api/profiles/{id}", s.crud(s.handleUpdateProfile))
	mux.HandleFunc("DELETE /api/profiles/{id}", s.crud(s.handleDeleteProfile))

	// Search and stats
	mux.HandleFunc("GET /api/search/advanced", s.protected(s.limited(s.searchLimiter, "search", s.handleAdvancedSearch)))
	mux.HandleFunc("GET /api/stats", s.protected(s.limited(s.metaLimiter, "meta", s.handleStats)))

	// Batch mutation
	mux.HandleFunc("POST /api/batch/organizations", s.batchRoute(s.handleBatchOrganizations))
	mux.HandleFunc("POST /api/batch/users", s.batchRoute(s.handleBatchUsers))
	mux.HandleFunc("POST /api/batch/profiles", s.batchRoute(s.handleBatchProfiles))
}

// crud wraps an entity handler with auth and the CRUD rate limit class.
func (s *Server) crud(h http.HandlerFunc) http.HandlerFunc {
	return s.protected(s.limited(s.crudLimiter, "crud", h))
}

// batchRoute wraps a batch handler with auth and the batch rate limit class.
func (s *Server) batchRoute(h http.HandlerFunc) http.HandlerFunc {
	return s.protected(s.limited(s.batchLimiter, "batch", h))
}
