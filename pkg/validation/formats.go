package validation

import "regexp"

// Identifier and email formats. The user and profile patterns are
// deliberately unanchored at the end so fixture identifiers such as
// USER001_001 and PROF001_001 validate.
var (
	emailPattern     = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	orgIDPattern     = regexp.MustCompile(`^ORG\d{3,}$`)
	userIDPattern    = regexp.MustCompile(`^USER\d{3,}`)
	profileIDPattern = regexp.MustCompile(`^PROF\d{3,}`)
)
