package service

import (
	"net/http"
	"testing"

	"github.com/ft-manu/forethought-test-api/internal/fixture"
	"github.com/ft-manu/forethought-test-api/internal/store"
	"github.com/ft-manu/forethought-test-api/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return New(store.New(fixture.DefaultOptions()))
}

func TestCreateOrganization(t *testing.T) {
	svc := newTestService(t)

	org, serr := svc.CreateOrganization(map[string]any{"name": "Acme", "type": "startup"})
	require.Nil(t, serr)
	assert.Equal(t, "ORG011", org.ID)
	assert.Equal(t, "Acme", org.Name)
	assert.Equal(t, entity.OrgTypeStartup, org.Type)
	assert.NotEmpty(t, org.Metadata.CreatedAt)
	assert.Equal(t, 11, svc.Store().Count(entity.KindOrganization))
}

func TestCreateOrganizationValidation(t *testing.T) {
	svc := newTestService(t)

	_, serr := svc.CreateOrganization(map[string]any{"type": "test"})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "Field 'name' is required and cannot be empty", serr.Message)
}

func TestCreateOrganizationExplicitID(t *testing.T) {
	svc := newTestService(t)

	org, serr := svc.CreateOrganization(map[string]any{"name": "Acme", "type": "test", "id": "ORG500"})
	require.Nil(t, serr)
	assert.Equal(t, "ORG500", org.ID)

	_, serr = svc.CreateOrganization(map[string]any{"name": "Dup", "type": "test", "id": "ORG500"})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusConflict, serr.Status)
	assert.Equal(t, "Organization with ID 'ORG500' already exists", serr.Message)
}

func TestUpdateOrganization(t *testing.T) {
	svc := newTestService(t)

	org, serr := svc.UpdateOrganization("ORG001", map[string]any{"name": "Renamed"})
	require.Nil(t, serr)
	assert.Equal(t, "Renamed", org.Name)
	assert.Equal(t, entity.OrgTypeTest, org.Type)

	_, serr = svc.UpdateOrganization("ORG999", map[string]any{"name": "X"})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.Status)

	_, serr = svc.UpdateOrganization("ORG001", map[string]any{"type": "bogus"})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
}

func TestCreateUser(t *testing.T) {
	svc := newTestService(t)

	user, serr := svc.CreateUser(map[string]any{
		"name":            "New User",
		"email":           "new@example.com",
		"organization_id": "ORG001",
	})
	require.Nil(t, serr)
	assert.Equal(t, "USER101", user.ID)
	assert.Equal(t, "PROF101", user.ProfileID)
	assert.Equal(t, "ORG001", user.OrganizationID)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, serr := svc.CreateUser(map[string]any{"name": "X", "email": "test1_1@example.com"})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "Email 'test1_1@example.com' is already in use by another user", serr.Message)
}

func TestCreateUserDanglingOrganization(t *testing.T) {
	svc := newTestService(t)

	_, serr := svc.CreateUser(map[string]any{"name": "X", "email": "x@example.com", "organization_id": "ORG999"})
	require.NotNil(t, serr)
	assert.Equal(t, "Organization with ID 'ORG999' does not exist", serr.Message)
}

func TestCreateUserNumericOrganizationRejected(t *testing.T) {
	svc := newTestService(t)

	_, serr := svc.CreateUser(map[string]any{"name": "X", "email": "x@example.com", "organization_id": float64(123)})
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusBadRequest, serr.Status)
	assert.Equal(t, "Organization with ID '123' does not exist", serr.Message)
}

func TestUpdateUserKeepsOwnEmail(t *testing.T) {
	svc := newTestService(t)

	user, serr := svc.UpdateUser("USER001_001", map[string]any{"email": "test1_1@example.com", "name": "Same Email"})
	require.Nil(t, serr)
	assert.Equal(t, "Same Email", user.Name)
}

func TestDeleteUser(t *testing.T) {
	svc := newTestService(t)
	require.Nil(t, svc.DeleteUser("USER001_001"))

	serr := svc.DeleteUser("USER001_001")
	require.NotNil(t, serr)
	assert.Equal(t, http.StatusNotFound, serr.Status)
	assert.Equal(t, "User not found", serr.Message)
}

func TestCreateProfileDefaults(t *testing.T) {
	svc := newTestService(t)

	profile, serr := svc.CreateProfile(map[string]any{"name": "Minimal"})
	require.Nil(t, serr)
	assert.Equal(t, "PROF101", profile.ID)
	assert.NotNil(t, profile.Settings)
	assert.NotNil(t, profile.Preferences)
	assert.Empty(t, profile.Settings)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)

	profile, serr := svc.UpdateProfile("PROF001_001", map[string]any{
		"settings": map[string]any{"theme": "dark"},
	})
	require.Nil(t, serr)
	assert.Equal(t, "dark", profile.Settings["theme"])
	// The nested fixture levels survive a settings update.
	assert.Contains(t, profile.Nested, "level10")
}
