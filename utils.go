package roster

import (
	"maps"
	"regexp"
	"strconv"
)

var validKindNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// IsValidKindName checks if a kind name can be used as a route segment
// (lowercase, alphanumeric with underscores or dashes, max 63 chars).
func IsValidKindName(name string) bool {
	return validKindNameRegex.MatchString(name) && len(name) <= 63
}

// ParseID parses a record id taken from a URL segment.
// It accepts only positive base-10 integers (leading zeros allowed) and
// reports false for anything else, including signs and whitespace.
func ParseID(s string) (int, bool) {
	if s == "" {
		return 0, false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}

	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// withoutID returns a copy of f with any "id" member removed.
// Record ids are owned by the server and never taken from client input.
func withoutID(f Fields) Fields {
	out := maps.Clone(f)
	delete(out, "id")
	return out
}
