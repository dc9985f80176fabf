// Package revision resolves the revision-scoped extended identity strings
// attached to OneNote objects.
//
// An identity has the form "<prefix> (familyKey, ordinal)". The family key
// is stable across every saved revision of the same logical entity and is
// the only grouping signal available for associating objects with pages;
// the ordinal increases with each revision.
package revision

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var identityPattern = regexp.MustCompile(`\(([^,]+),\s*(\d+)?`)

// FamilyKey extracts the revision-independent key from an identity string:
// the text between the first '(' and the following ','. GUID-valued keys
// are canonicalized so differently-cased copies of the same key compare
// equal. Returns "" when the pattern is absent.
func FamilyKey(identity string) string {
	m := identityPattern.FindStringSubmatch(identity)
	if m == nil {
		return ""
	}
	key := strings.TrimSpace(m[1])
	if id, err := uuid.Parse(key); err == nil {
		return id.String()
	}
	return key
}

// Ordinal extracts the revision ordinal that follows the family key, or 0
// when the identity does not carry one.
func Ordinal(identity string) int {
	m := identityPattern.FindStringSubmatch(identity)
	if m == nil || m[2] == "" {
		return 0
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return 0
	}
	return n
}
