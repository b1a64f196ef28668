package fixture

import (
	"testing"

	"github.com/ft-manu/forethought-test-api/pkg/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDefaults(t *testing.T) {
	ds := Generate(DefaultOptions())

	assert.Len(t, ds.Organizations, 10)
	assert.Len(t, ds.Users, 100)
	assert.Len(t, ds.Profiles, 100)

	org := ds.Organizations[0]
	assert.Equal(t, "ORG001", org.ID)
	assert.Equal(t, "Test Organization 1", org.Name)
	assert.Equal(t, BaseVersion, org.Metadata.Version)

	user := ds.Users[0]
	assert.Equal(t, "USER001_001", user.ID)
	assert.Equal(t, "Test User 1-1", user.Name)
	assert.Equal(t, "test1_1@example.com", user.Email)
	assert.Equal(t, "ORG001", user.OrganizationID)
	assert.Equal(t, "PROF001_001", user.ProfileID)
}

func TestGenerateDeterministic(t *testing.T) {
	a := Generate(DefaultOptions())
	b := Generate(DefaultOptions())
	assert.Equal(t, a.Organizations, b.Organizations)
	assert.Equal(t, a.Users, b.Users)
	assert.Equal(t, a.Profiles, b.Profiles)
}

func TestProfileNestingDepth(t *testing.T) {
	ds := Generate(DefaultOptions())
	p := ds.Profiles[0].Map()

	// The deepest leaf sits below the level10..level2 chain.
	v, ok := query.Resolve(p, "level10.level9.level8.level7.level6.level5.level4.level3.level2.data")
	require.True(t, ok)
	assert.Equal(t, "Level 1 data", v)

	// Every level carries metadata.
	v, ok = query.Resolve(p, "level10.level9.metadata.version")
	require.True(t, ok)
	assert.Equal(t, BaseVersion, v)
}

func TestGenerateCustomSizes(t *testing.T) {
	ds := Generate(Options{Organizations: 2, UsersPerOrg: 3, ProfileDepth: 4})
	assert.Len(t, ds.Organizations, 2)
	assert.Len(t, ds.Users, 6)
	assert.Len(t, ds.Profiles, 6)

	p := ds.Profiles[0].Map()
	v, ok := query.Resolve(p, "level4.level3.level2.data")
	require.True(t, ok)
	assert.Equal(t, "Level 1 data", v)
}
