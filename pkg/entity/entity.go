// Package entity defines the synthetic entity types served by the test API.
//
// Organizations and users have a fixed top-level shape and are modeled as
// concrete structs. Profiles additionally carry an open set of nested keys
// (the fixture generator produces a ten-level chain under level10..level1),
// kept in an untyped map so the query engine can traverse them generically.
package entity

import "time"

// Kind identifies an entity collection.
type Kind string

// Entity kinds.
const (
	KindOrganization Kind = "organization"
	KindUser         Kind = "user"
	KindProfile      Kind = "profile"
)

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindOrganization, KindUser, KindProfile:
		return true
	}
	return false
}

// IDPrefix returns the identifier prefix for the kind ("ORG", "USER", "PROF").
func (k Kind) IDPrefix() string {
	switch k {
	case KindOrganization:
		return "ORG"
	case KindUser:
		return "USER"
	case KindProfile:
		return "PROF"
	}
	return ""
}

// OrgType is the closed set of organization types.
type OrgType string

// Organization types accepted by the validator.
const (
	OrgTypeTest       OrgType = "test"
	OrgTypeEnterprise OrgType = "enterprise"
	OrgTypeStartup    OrgType = "startup"
	OrgTypeNonprofit  OrgType = "nonprofit"
	OrgTypeGovernment OrgType = "government"
)

// OrgTypes lists all valid organization types in declaration order.
func OrgTypes() []OrgType {
	return []OrgType{OrgTypeTest, OrgTypeEnterprise, OrgTypeStartup, OrgTypeNonprofit, OrgTypeGovernment}
}

// Valid reports whether t is a known organization type.
func (t OrgType) Valid() bool {
	for _, v := range OrgTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Metadata carries the bookkeeping timestamps every entity has.
type Metadata struct {
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
	Version   string `json:"version"`
}

// NewMetadata returns metadata stamped with the current time.
func NewMetadata() Metadata {
	now := time.Now().UTC().Format(time.RFC3339)
	return Metadata{CreatedAt: now, UpdatedAt: now, Version: "1.0.0"}
}

// Touch refreshes the updated_at timestamp.
func (m *Metadata) Touch() {
	m.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
}

// Map returns the metadata as a generic mapping.
func (m Metadata) Map() map[string]any {
	return map[string]any{
		"created_at": m.CreatedAt,
		"updated_at": m.UpdatedAt,
		"version":    m.Version,
	}
}

// Organization is a synthetic organization record.
type Organization struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     OrgType  `json:"type"`
	Metadata Metadata `json:"metadata"`
}

// Map returns the organization as a generic mapping for filtering and search.
func (o *Organization) Map() map[string]any {
	return map[string]any{
		"id":       o.ID,
		"name":     o.Name,
		"type":     string(o.Type),
		"metadata": o.Metadata.Map(),
	}
}

// User is a synthetic user record. OrganizationID and ProfileID are weak
// references: they are checked at validation time only and may dangle after
// the referenced entity is deleted.
type User struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	OrganizationID string   `json:"organization_id"`
	ProfileID      string   `json:"profile_id"`
	Metadata       Metadata `json:"metadata"`
}

// Map returns the user as a generic mapping for filtering and search.
func (u *User) Map() map[string]any {
	return map[string]any{
		"id":              u.ID,
		"name":            u.Name,
		"email":           u.Email,
		"organization_id": u.OrganizationID,
		"profile_id":      u.ProfileID,
		"metadata":        u.Metadata.Map(),
	}
}

// Profile is a synthetic profile record. Settings and Preferences are open
// JSON objects; Nested holds any additional top-level keys (such as the
// fixture's level10 chain) that are flattened into the JSON object form.
type Profile struct {
	ID          string
	Name        string
	Settings    map[string]any
	Preferences map[string]any
	Metadata    Metadata
	Nested      map[string]any
}

// Map returns the profile as a generic mapping for filtering and search.
// Nested keys appear at the top level alongside the fixed fields.
func (p *Profile) Map() map[string]any {
	m := make(map[string]any, len(p.Nested)+5)
	for k, v := range p.Nested {
		m[k] = v
	}
	m["id"] = p.ID
	m["metadata"] = p.Metadata.Map()
	if p.Name != "" {
		m["name"] = p.Name
	}
	if p.Settings != nil {
		m["settings"] = p.Settings
	}
	if p.Preferences != nil {
		m["preferences"] = p.Preferences
	}
	return m
}
