// Package validation contains request payload validation helpers. Each
// validator returns the first failure it finds as a human-readable message.
package validation

import "regexp"

// Identifiers are 24 (or legacy 12) character hex strings.
var idPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$|^[0-9a-fA-F]{12}$`)

// ValidID reports whether s is a well-formed entity identifier.
func ValidID(s string) bool {
	return idPattern.MatchString(s)
}
