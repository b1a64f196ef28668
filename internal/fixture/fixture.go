// Package fixture generates the deterministic sample dataset the server
// holds in memory: organizations, their users, and deeply nested profiles.
// The dataset is rebuilt from scratch on every process start.
package fixture

import (
	"fmt"

	"github.com/ft-manu/forethought-test-api/pkg/entity"
)

// Baseline metadata stamped on every generated record.
const (
	BaseTimestamp = "2024-01-01T00:00:00Z"
	BaseVersion   = "1.0.0"
)

// Options controls the size of the generated dataset.
type Options struct {
	Organizations int `json:"organizations" yaml:"organizations"`
	UsersPerOrg   int `json:"users_per_org" yaml:"users_per_org"`
	ProfileDepth  int `json:"profile_depth" yaml:"profile_depth"`
}

// DefaultOptions returns the canonical fixture size: 10 organizations,
// 10 users each, profiles nested 10 levels deep.
func DefaultOptions() Options {
	return Options{Organizations: 10, UsersPerOrg: 10, ProfileDepth: 10}
}

// Dataset holds the three generated collections in insertion order.
type Dataset struct {
	Organizations []*entity.Organization
	Users         []*entity.User
	Profiles      []*entity.Profile
}

// Generate builds the sample dataset. Generation is fully deterministic:
// the same options always produce the same records.
func Generate(opts Options) *Dataset {
	baseMeta := entity.Metadata{
		CreatedAt: BaseTimestamp,
		UpdatedAt: BaseTimestamp,
		Version:   BaseVersion,
	}

	ds := &Dataset{}
	for i := 1; i <= opts.Organizations; i++ {
		orgID := fmt.Sprintf("ORG%03d", i)
		ds.Organizations = append(ds.Organizations, &entity.Organization{
			ID:       orgID,
			Name:     fmt.Sprintf("Test Organization %d", i),
			Type:     entity.OrgTypeTest,
			Metadata: baseMeta,
		})

		for j := 1; j <= opts.UsersPerOrg; j++ {
			profileID := fmt.Sprintf("PROF%03d_%03d", i, j)
			ds.Profiles = append(ds.Profiles, &entity.Profile{
				ID:       profileID,
				Metadata: baseMeta,
				Nested:   nestedLevels(opts.ProfileDepth),
			})

			ds.Users = append(ds.Users, &entity.User{
				ID:             fmt.Sprintf("USER%03d_%03d", i, j),
				Name:           fmt.Sprintf("Test User %d-%d", i, j),
				Email:          fmt.Sprintf("test%d_%d@example.com", i, j),
				OrganizationID: orgID,
				ProfileID:      profileID,
				Metadata:       baseMeta,
			})
		}
	}
	return ds
}

// nestedLevels builds the levelN..level2 chain that exercises deep
// traversal; the innermost object carries the data field. The profile
// root itself counts as one level, so depth 10 yields keys level10
// through level2 with the leaf below level2.
func nestedLevels(depth int) map[string]any {
	if depth < 2 {
		return nestedLevel(1)
	}
	return map[string]any{
		fmt.Sprintf("level%d", depth): nestedLevel(depth - 1),
	}
}

func nestedLevel(level int) map[string]any {
	meta := map[string]any{
		"created_at": BaseTimestamp,
		"updated_at": BaseTimestamp,
		"version":    BaseVersion,
	}
	if level == 1 {
		return map[string]any{
			"data":     "Level 1 data",
			"metadata": meta,
		}
	}
	return map[string]any{
		fmt.Sprintf("level%d", level): nestedLevel(level - 1),
		"metadata":                    meta,
	}
}
