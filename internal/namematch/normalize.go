// Package namematch canonicalizes member names and resolves free-text
// spreadsheet names against a chapter roster. A member's identity within
// a chapter is its normalized name, so all matching funnels through
// Normalize.
package namematch

import (
	"strings"
)

var (
	titlePrefixes = []string{"mr.", "mrs.", "ms.", "dr.", "prof."}
	nameSuffixes  = []string{"jr.", "sr.", "ii", "iii", "iv"}
)

// Normalize canonicalizes a raw name: lowercase, internal whitespace
// collapsed to single spaces, one leading title and one trailing suffix
// stripped. Empty input yields the empty string. Normalize is idempotent.
func Normalize(name string) string {
	parts := strings.Fields(strings.ToLower(name))
	if len(parts) == 0 {
		return ""
	}

	if hasAny(parts[0], titlePrefixes) {
		parts = parts[1:]
	}
	if len(parts) > 0 && hasAny(parts[len(parts)-1], nameSuffixes) {
		parts = parts[:len(parts)-1]
	}

	return strings.Join(parts, " ")
}

func hasAny(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

// collapse lowercases and squeezes runs of whitespace, without stripping
// titles or suffixes. Used as a resolution fallback tier.
func collapse(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
