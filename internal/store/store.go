// Package store holds the mutable in-memory entity collections.
//
// The three collections are ordered slices: creation appends, update mutates
// in place, deletion removes by identity. The store owns a monotonic ID
// counter per entity kind for auto-generated identifiers. All access goes
// through an RWMutex; nothing is persisted, and Reset rebuilds the baseline
// dataset from the fixture generator.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ft-manu/forethought-test-api/internal/fixture"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
)

// Sentinel errors returned by store operations.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrDuplicateID = errors.New("duplicate entity id")
)

// Store is the process-wide entity store. Construct it once at startup with
// New and pass it by reference into the validation and handler layers.
type Store struct {
	mu            sync.RWMutex
	organizations []*entity.Organization
	users         []*entity.User
	profiles      []*entity.Profile
	next          map[entity.Kind]int
}

// New creates a store seeded with the generated fixture dataset.
func New(opts fixture.Options) *Store {
	s := &Store{}
	s.reset(fixture.Generate(opts))
	return s
}

// Reset discards all mutations and reseeds the baseline dataset.
func (s *Store) Reset(opts fixture.Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset(fixture.Generate(opts))
}

func (s *Store) reset(ds *fixture.Dataset) {
	s.organizations = ds.Organizations
	s.users = ds.Users
	s.profiles = ds.Profiles
	s.next = map[entity.Kind]int{
		entity.KindOrganization: len(ds.Organizations) + 1,
		entity.KindUser:         len(ds.Users) + 1,
		entity.KindProfile:      len(ds.Profiles) + 1,
	}
}

// NextID reserves and returns the next auto-generated identifier for the
// kind, skipping any identifiers already taken by explicit-ID creates.
func (s *Store) NextID(kind entity.Kind) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextIDLocked(kind)
}

func (s *Store) nextIDLocked(kind entity.Kind) string {
	for {
		id := fmt.Sprintf("%s%03d", kind.IDPrefix(), s.next[kind])
		s.next[kind]++
		if !s.idExistsLocked(kind, id) {
			return id
		}
	}
}

// IDExists reports whether an entity of the kind with the given ID exists.
func (s *Store) IDExists(kind entity.Kind, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idExistsLocked(kind, id)
}

func (s *Store) idExistsLocked(kind entity.Kind, id string) bool {
	switch kind {
	case entity.KindOrganization:
		for _, o := range s.organizations {
			if o.ID == id {
				return true
			}
		}
	case entity.KindUser:
		for _, u := range s.users {
			if u.ID == id {
				return true
			}
		}
	case entity.KindProfile:
		for _, p := range s.profiles {
			if p.ID == id {
				return true
			}
		}
	}
	return false
}

// Count returns the number of entities of the kind.
func (s *Store) Count(kind entity.Kind) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case entity.KindOrganization:
		return len(s.organizations)
	case entity.KindUser:
		return len(s.users)
	case entity.KindProfile:
		return len(s.profiles)
	}
	return 0
}

// EmailInUse reports whether any user other than excludeID has the email.
func (s *Store) EmailInUse(email, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email && u.ID != excludeID {
			return true
		}
	}
	return false
}

// OrganizationExists reports whether an organization with the ID exists.
func (s *Store) OrganizationExists(id string) bool {
	return s.IDExists(entity.KindOrganization, id)
}

// Organizations returns the organization collection in insertion order.
func (s *Store) Organizations() []*entity.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Organization, len(s.organizations))
	copy(out, s.organizations)
	return out
}

// GetOrganization looks up an organization by ID.
func (s *Store) GetOrganization(id string) (*entity.Organization, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.organizations {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// AddOrganization appends a new organization.
func (s *Store) AddOrganization(o *entity.Organization) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idExistsLocked(entity.KindOrganization, o.ID) {
		return ErrDuplicateID
	}
	s.organizations = append(s.organizations, o)
	return nil
}

// UpdateOrganization applies the mutation to the stored organization and
// refreshes its updated_at timestamp.
func (s *Store) UpdateOrganization(id string, apply func(*entity.Organization)) (*entity.Organization, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.organizations {
		if o.ID == id {
			apply(o)
			o.Metadata.Touch()
			return o, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteOrganization removes an organization by ID.
func (s *Store) DeleteOrganization(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.organizations {
		if o.ID == id {
			s.organizations = append(s.organizations[:i], s.organizations[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Users returns the user collection in insertion order.
func (s *Store) Users() []*entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.User, len(s.users))
	copy(out, s.users)
	return out
}

// UsersByOrganization returns the users referencing the organization.
func (s *Store) UsersByOrganization(orgID string) []*entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*entity.User
	for _, u := range s.users {
		if u.OrganizationID == orgID {
			out = append(out, u)
		}
	}
	return out
}

// GetUser looks up a user by ID.
func (s *Store) GetUser(id string) (*entity.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return nil, false
}

// AddUser appends a new user.
func (s *Store) AddUser(u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idExistsLocked(entity.KindUser, u.ID) {
		return ErrDuplicateID
	}
	s.users = append(s.users, u)
	return nil
}

// UpdateUser applies the mutation to the stored user and refreshes its
// updated_at timestamp.
func (s *Store) UpdateUser(id string, apply func(*entity.User)) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			apply(u)
			u.Metadata.Touch()
			return u, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteUser removes a user by ID.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.ID == id {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// Profiles returns the profile collection in insertion order.
func (s *Store) Profiles() []*entity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out
}

// GetProfile looks up a profile by ID.
func (s *Store) GetProfile(id string) (*entity.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.profiles {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// AddProfile appends a new profile.
func (s *Store) AddProfile(p *entity.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idExistsLocked(entity.KindProfile, p.ID) {
		return ErrDuplicateID
	}
	s.profiles = append(s.profiles, p)
	return nil
}

// UpdateProfile applies the mutation to the stored profile and refreshes
// its updated_at timestamp.
func (s *Store) UpdateProfile(id string, apply func(*entity.Profile)) (*entity.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.ID == id {
			apply(p)
			p.Metadata.Touch()
			return p, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteProfile removes a profile by ID.
func (s *Store) DeleteProfile(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.profiles {
		if p.ID == id {
			s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// OrganizationMaps returns the organizations in generic map form for the
// query engine.
func (s *Store) OrganizationMaps() []map[string]any {
	orgs := s.Organizations()
	out := make([]map[string]any, len(orgs))
	for i, o := range orgs {
		out[i] = o.Map()
	}
	return out
}

// UserMaps returns the users in generic map form for the query engine.
func (s *Store) UserMaps() []map[string]any {
	users := s.Users()
	out := make([]map[string]any, len(users))
	for i, u := range users {
		out[i] = u.Map()
	}
	return out
}

// ProfileMaps returns the profiles in generic map form for the query engine.
func (s *Store) ProfileMaps() []map[string]any {
	profiles := s.Profiles()
	out := make([]map[string]any, len(profiles))
	for i, p := range profiles {
		out[i] = p.Map()
	}
	return out
}
