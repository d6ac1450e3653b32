package module

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// DemoIdentity is the reserved identity used by the demo install flow
// to validate an end-to-end environment.
const DemoIdentity = "DEMO"

// identityLen is the exact identity length: SSP module slots address
// modules by a fixed 4-character code.
const identityLen = 4

// identityPattern is the full identity rule: an uppercase letter
// followed by three uppercase letters or digits.
var identityPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{3}$`)

// ValidateIdentity checks an identity against the naming rule and returns
// an *InvalidIdentityError naming the first violated constraint.
func ValidateIdentity(id string) error {
	if len(id) != identityLen {
		return &InvalidIdentityError{Identity: id, Reason: "must be exactly 4 characters"}
	}
	if c := id[0]; c < 'A' || c > 'Z' {
		return &InvalidIdentityError{Identity: id, Reason: "must start with an uppercase letter"}
	}
	if !identityPattern.MatchString(id) {
		return &InvalidIdentityError{Identity: id, Reason: "may contain only uppercase letters and digits"}
	}
	return nil
}

// IsValidIdentity reports whether id satisfies the naming rule.
func IsValidIdentity(id string) bool {
	return ValidateIdentity(id) == nil
}

// DefaultName derives a human-readable default module name from an
// identity, e.g. "DLY1" becomes "Dly1".
func DefaultName(id string) string {
	return cases.Title(language.English).String(strings.ToLower(id))
}
