package scopes

import (
	"slices"
	"strings"
)

// Separator delimits scopes inside a token's scope claim.
const Separator = " "

// Parse converts a space-separated scope claim into a slice. Surrounding
// and repeated whitespace is tolerated; the result is nil for an empty
// claim.
func Parse(claim string) []string {
	fields := strings.Fields(claim)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// Join converts a scope slice back to the wire form.
func Join(scopes []string) string {
	return strings.Join(scopes, Separator)
}

// Has reports whether the granted set contains the scope.
func Has(granted []string, scope string) bool {
	return slices.Contains(granted, scope)
}

// HasAll reports whether every required scope is present in the granted
// set. An empty requirement is trivially satisfied.
func HasAll(granted, required []string) bool {
	for _, scope := range required {
		if !Has(granted, scope) {
			return false
		}
	}
	return true
}

// Missing returns the required scopes absent from the granted set, in
// requirement order. Nil when the grant covers everything.
func Missing(granted, required []string) []string {
	var missing []string
	for _, scope := range required {
		if !Has(granted, scope) {
			missing = append(missing, scope)
		}
	}
	return missing
}
