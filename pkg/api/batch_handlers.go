package api

import (
	"net/http"

	"github.com/ft-manu/forethought-test-api/pkg/batch"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
	"github.com/ft-manu/forethought-test-api/pkg/httputil"
)

// handleBatchOrganizations handles POST /api/batch/organizations.
func (s *Server) handleBatchOrganizations(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, entity.KindOrganization)
}

// handleBatchUsers handles POST /api/batch/users.
func (s *Server) handleBatchUsers(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, entity.KindUser)
}

// handleBatchProfiles handles POST /api/batch/profiles.
func (s *Server) handleBatchProfiles(w http.ResponseWriter, r *http.Request) {
	s.handleBatch(w, r, entity.KindProfile)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request, kind entity.Kind) {
	body, errMsg := decodeBody(r)
	if errMsg != "" {
		httputil.WriteBadRequest(w, errMsg)
		return
	}

	operations := body["operations"]
	if operations == nil {
		operations = []any{}
	}
	if res := batch.Validate(operations); !res.Valid {
		httputil.WriteBadRequest(w, res.Message)
		return
	}

	results := s.executor.Execute(kind, batch.Decode(operations))
	s.syncEntityGauges()
	httputil.WriteOK(w, batch.Response{Results: results})
}
