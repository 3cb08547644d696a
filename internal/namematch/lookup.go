package namematch

import (
	"strings"

	"bnitrack/pkg/contracts/domain"
)

// Lookup resolves free-text names to roster members. It is built once per
// ingestion run from the chapter's active roster and is read-only after
// construction.
//
// Each member is registered under three keys: its normalized full name,
// its literal lowercase "first last", and its bare lowercase first name.
// The first-name key is weak: the first member to claim it wins and later
// collisions are skipped, so matches through it are reported as weak for
// the caller to surface a warning.
type Lookup struct {
	entries map[string]entry
}

type entry struct {
	member domain.Member
	weak   bool
}

// Match is a successful resolution. Weak marks a hit through the bare
// first-name key, which can misattribute when two members share a first
// name.
type Match struct {
	Member domain.Member
	Weak   bool
}

// MemberKey returns the canonical identity key for a roster member: the
// stored normalized name when present, otherwise the normalized full name.
// Interactions reference members by this key.
func MemberKey(m domain.Member) string {
	if m.NormalizedName != "" {
		return m.NormalizedName
	}
	return Normalize(m.FullName())
}

// NewLookup builds the resolution table from a chapter roster.
func NewLookup(members []domain.Member) *Lookup {
	l := &Lookup{entries: make(map[string]entry, len(members)*3)}

	for _, m := range members {
		l.register(MemberKey(m), m, false)
		l.register(strings.ToLower(strings.TrimSpace(m.FullName())), m, false)
		l.register(strings.ToLower(strings.TrimSpace(m.FirstName)), m, true)
	}
	return l
}

// register stores a key. Strong keys overwrite; the weak first-name key
// is first-registration-wins.
func (l *Lookup) register(key string, m domain.Member, weak bool) {
	if key == "" {
		return
	}
	if weak {
		if _, taken := l.entries[key]; taken {
			return
		}
	}
	l.entries[key] = entry{member: m, weak: weak}
}

// Resolve maps a raw spreadsheet name to a roster member. It tries the
// normalized form first, then the raw lowercase trimmed form, then a
// whitespace-collapsed lowercase form. A total miss returns ok=false; the
// caller records a warning and continues, a miss never fails the batch.
func (l *Lookup) Resolve(raw string) (Match, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Match{}, false
	}

	for _, key := range []string{
		Normalize(raw),
		strings.ToLower(raw),
		collapse(raw),
	} {
		if e, ok := l.entries[key]; ok {
			return Match{Member: e.member, Weak: e.weak}, true
		}
	}
	return Match{}, false
}

// Len reports how many keys the table holds.
func (l *Lookup) Len() int {
	return len(l.entries)
}
