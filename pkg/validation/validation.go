// Package validation implements the entity validators.
//
// Validators are pure functions over a raw field mapping: they return a
// pass/fail Result with a descriptive message and never mutate their input.
// Creation requires the designated mandatory fields; updates validate only
// the fields present in the payload. Checks are fail-fast: the first
// violated rule wins.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ft-manu/forethought-test-api/pkg/entity"
)

// Result is the outcome of a validation check.
type Result struct {
	Valid   bool
	Message string
}

func failf(format string, args ...any) Result {
	return Result{Message: fmt.Sprintf(format, args...)}
}

var passed = Result{Valid: true}

// Directory is the live-collection view the validators consult for
// uniqueness and reference checks. The store implements it.
type Directory interface {
	EmailInUse(email, excludeID string) bool
	OrganizationExists(id string) bool
	IDExists(kind entity.Kind, id string) bool
}

// ValidateOrganization checks an organization payload.
func ValidateOrganization(data map[string]any, isUpdate bool) Result {
	if !isUpdate {
		if !truthy(data["name"]) {
			return failf("Field 'name' is required and cannot be empty")
		}
		if !truthy(data["type"]) {
			return failf("Field 'type' is required and cannot be empty")
		}
	}

	if v, present := data["name"]; present {
		if r := validateName(v); !r.Valid {
			return r
		}
	}

	if v, present := data["type"]; present {
		s, isString := v.(string)
		if !isString || !entity.OrgType(s).Valid() {
			return failf("Field 'type' must be one of: %s", orgTypeList())
		}
	}

	if v, present := data["id"]; present {
		s, isString := v.(string)
		if !isString || !orgIDPattern.MatchString(s) {
			return failf("Field 'id' must follow format 'ORG###' (e.g., 'ORG001', 'ORG123')")
		}
	}

	return passed
}

// ValidateUser checks a user payload. excludeID names the user being
// updated so its own email does not count as a duplicate.
func ValidateUser(data map[string]any, isUpdate bool, excludeID string, dir Directory) Result {
	if !isUpdate {
		if !truthy(data["name"]) {
			return failf("Field 'name' is required and cannot be empty")
		}
		if !truthy(data["email"]) {
			return failf("Field 'email' is required and cannot be empty")
		}
	}

	if v, present := data["name"]; present {
		if r := validateName(v); !r.Valid {
			return r
		}
	}

	if v, present := data["email"]; present {
		s, isString := v.(string)
		if !isString || !emailPattern.MatchString(s) {
			return failf("Field 'email' must be a valid email address")
		}
		if dir.EmailInUse(s, excludeID) {
			return failf("Email '%s' is already in use by another user", s)
		}
	}

	if v, present := data["organization_id"]; present && truthy(v) {
		// Empty or null keeps the reference optional; anything else must
		// name an existing organization.
		s, isString := v.(string)
		if !isString {
			return failf("Organization with ID '%v' does not exist", v)
		}
		if !dir.OrganizationExists(s) {
			return failf("Organization with ID '%s' does not exist", s)
		}
	}

	if v, present := data["id"]; present {
		s, isString := v.(string)
		if !isString || !userIDPattern.MatchString(s) {
			return failf("Field 'id' must follow format 'USER###' (e.g., 'USER001', 'USER123')")
		}
	}

	return passed
}

// ValidateProfile checks a profile payload.
func ValidateProfile(data map[string]any, isUpdate bool) Result {
	if !isUpdate {
		if !truthy(data["name"]) {
			return failf("Field 'name' is required and cannot be empty")
		}
	}

	if v, present := data["name"]; present {
		if r := validateName(v); !r.Valid {
			return r
		}
	}

	if v, present := data["settings"]; present {
		if _, isMap := v.(map[string]any); !isMap {
			return failf("Field 'settings' must be a valid JSON object")
		}
	}

	if v, present := data["preferences"]; present {
		if _, isMap := v.(map[string]any); !isMap {
			return failf("Field 'preferences' must be a valid JSON object")
		}
	}

	if v, present := data["id"]; present {
		s, isString := v.(string)
		if !isString || !profileIDPattern.MatchString(s) {
			return failf("Field 'id' must follow format 'PROF###' (e.g., 'PROF001', 'PROF123')")
		}
	}

	return passed
}

// CheckDuplicateID verifies no other entity of the kind already uses the ID.
func CheckDuplicateID(dir Directory, kind entity.Kind, id, excludeID string) Result {
	if !kind.Valid() {
		return failf("Invalid entity type: %s", kind)
	}
	if id != excludeID && dir.IDExists(kind, id) {
		return failf("%s with ID '%s' already exists", kindTitle(kind), id)
	}
	return passed
}

func validateName(v any) Result {
	s, isString := v.(string)
	if !isString || strings.TrimSpace(s) == "" {
		return failf("Field 'name' must be a non-empty string")
	}
	if utf8.RuneCountInString(s) > 100 {
		return failf("Field 'name' must be 100 characters or less")
	}
	return passed
}

// truthy mirrors the loose presence semantics of the fixture payloads:
// nil, empty strings, false, zero, and empty collections all count as
// absent.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case map[string]any:
		return len(t) != 0
	case []any:
		return len(t) != 0
	}
	return true
}

func kindTitle(k entity.Kind) string {
	switch k {
	case entity.KindOrganization:
		return "Organization"
	case entity.KindUser:
		return "User"
	case entity.KindProfile:
		return "Profile"
	}
	return string(k)
}

func orgTypeList() string {
	types := entity.OrgTypes()
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
