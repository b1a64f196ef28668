// Package service implements the entity mutation paths shared by the REST
// handlers and the batch executor: validation, identifier assignment, and
// store updates, with errors carrying the HTTP status they map to.
package service

import (
	"net/http"

	"github.com/ft-manu/forethought-test-api/internal/store"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
	"github.com/ft-manu/forethought-test-api/pkg/validation"
)

// Error is a mutation failure with the boundary status code it maps to.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func badRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func conflict(msg string) *Error {
	return &Error{Status: http.StatusConflict, Message: msg}
}

func notFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

// Service wraps the store with the validated create/update/delete paths.
type Service struct {
	store *store.Store
}

// New creates a service over the given store.
func New(st *store.Store) *Service {
	return &Service{store: st}
}

// Store exposes the underlying store for read paths.
func (s *Service) Store() *store.Store {
	return s.store
}

// resolveID picks the explicit identifier from the payload when present
// (after a duplicate check) or reserves the next auto-generated one.
func (s *Service) resolveID(kind entity.Kind, data map[string]any) (string, *Error) {
	if id, ok := data["id"].(string); ok && id != "" {
		if r := validation.CheckDuplicateID(s.store, kind, id, ""); !r.Valid {
			return "", conflict(r.Message)
		}
		return id, nil
	}
	return s.store.NextID(kind), nil
}

// CreateOrganization validates and appends a new organization.
func (s *Service) CreateOrganization(data map[string]any) (*entity.Organization, *Error) {
	if r := validation.ValidateOrganization(data, false); !r.Valid {
		return nil, badRequest(r.Message)
	}

	id, serr := s.resolveID(entity.KindOrganization, data)
	if serr != nil {
		return nil, serr
	}

	org := &entity.Organization{
		ID:       id,
		Name:     data["name"].(string),
		Type:     entity.OrgType(data["type"].(string)),
		Metadata: entity.NewMetadata(),
	}
	if err := s.store.AddOrganization(org); err != nil {
		return nil, conflict(err.Error())
	}
	return org, nil
}

// UpdateOrganization validates the payload and patches the fields present.
func (s *Service) UpdateOrganization(id string, data map[string]any) (*entity.Organization, *Error) {
	if r := validation.ValidateOrganization(data, true); !r.Valid {
		return nil, badRequest(r.Message)
	}

	org, err := s.store.UpdateOrganization(id, func(o *entity.Organization) {
		if name, ok := data["name"].(string); ok {
			o.Name = name
		}
		if typ, ok := data["type"].(string); ok {
			o.Type = entity.OrgType(typ)
		}
	})
	if err != nil {
		return nil, notFound("Organization not found")
	}
	return org, nil
}

// DeleteOrganization removes an organization. Users referencing it keep
// their weak reference; deletion never cascades.
func (s *Service) DeleteOrganization(id string) *Error {
	if err := s.store.DeleteOrganization(id); err != nil {
		return notFound("Organization not found")
	}
	return nil
}

// CreateUser validates and appends a new user. The profile reference is
// reserved but no profile record is created for it.
func (s *Service) CreateUser(data map[string]any) (*entity.User, *Error) {
	if r := validation.ValidateUser(data, false, "", s.store); !r.Valid {
		return nil, badRequest(r.Message)
	}

	id, serr := s.resolveID(entity.KindUser, data)
	if serr != nil {
		return nil, serr
	}

	orgID, _ := data["organization_id"].(string)
	user := &entity.User{
		ID:             id,
		Name:           data["name"].(string),
		Email:          data["email"].(string),
		OrganizationID: orgID,
		ProfileID:      s.store.NextID(entity.KindProfile),
		Metadata:       entity.NewMetadata(),
	}
	if err := s.store.AddUser(user); err != nil {
		return nil, conflict(err.Error())
	}
	return user, nil
}

// UpdateUser validates the payload and patches the fields present.
func (s *Service) UpdateUser(id string, data map[string]any) (*entity.User, *Error) {
	if r := validation.ValidateUser(data, true, id, s.store); !r.Valid {
		return nil, badRequest(r.Message)
	}

	user, err := s.store.UpdateUser(id, func(u *entity.User) {
		if name, ok := data["name"].(string); ok {
			u.Name = name
		}
		if email, ok := data["email"].(string); ok {
			u.Email = email
		}
		if orgID, ok := data["organization_id"].(string); ok {
			u.OrganizationID = orgID
		}
	})
	if err != nil {
		return nil, notFound("User not found")
	}
	return user, nil
}

// DeleteUser removes a user.
func (s *Service) DeleteUser(id string) *Error {
	if err := s.store.DeleteUser(id); err != nil {
		return notFound("User not found")
	}
	return nil
}

// CreateProfile validates and appends a new profile.
func (s *Service) CreateProfile(data map[string]any) (*entity.Profile, *Error) {
	if r := validation.ValidateProfile(data, false); !r.Valid {
		return nil, badRequest(r.Message)
	}

	id, serr := s.resolveID(entity.KindProfile, data)
	if serr != nil {
		return nil, serr
	}

	settings, _ := data["settings"].(map[string]any)
	if settings == nil {
		settings = map[string]any{}
	}
	preferences, _ := data["preferences"].(map[string]any)
	if preferences == nil {
		preferences = map[string]any{}
	}

	profile := &entity.Profile{
		ID:          id,
		Name:        data["name"].(string),
		Settings:    settings,
		Preferences: preferences,
		Metadata:    entity.NewMetadata(),
	}
	if err := s.store.AddProfile(profile); err != nil {
		return nil, conflict(err.Error())
	}
	return profile, nil
}

// UpdateProfile validates the payload and patches the fields present.
func (s *Service) UpdateProfile(id string, data map[string]any) (*entity.Profile, *Error) {
	if r := validation.ValidateProfile(data, true); !r.Valid {
		return nil, badRequest(r.Message)
	}

	profile, err := s.store.UpdateProfile(id, func(p *entity.Profile) {
		if name, ok := data["name"].(string); ok {
			p.Name = name
		}
		if settings, ok := data["settings"].(map[string]any); ok {
			p.Settings = settings
		}
		if preferences, ok := data["preferences"].(map[string]any); ok {
			p.Preferences = preferences
		}
	})
	if err != nil {
		return nil, notFound("Profile not found")
	}
	return profile, nil
}

// DeleteProfile removes a profile.
func (s *Service) DeleteProfile(id string) *Error {
	if err := s.store.DeleteProfile(id); err != nil {
		return notFound("Profile not found")
	}
	return nil
}
