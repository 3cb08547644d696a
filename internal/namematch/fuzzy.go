package namematch

import (
	"strings"

	"bnitrack/pkg/contracts/domain"
)

// DefaultThreshold is the minimum similarity ratio BestMatch accepts.
const DefaultThreshold = 0.8

// Variants generates the matching variants of a name: the lowercase
// literal, the normalized form, bare first and last names, and
// "initial. last" / "initial last" forms. Duplicates are removed,
// first-seen order kept.
func Variants(name string) []string {
	var variants []string
	seen := make(map[string]bool)
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	add(strings.ToLower(strings.TrimSpace(name)))
	add(Normalize(name))

	parts := strings.Fields(name)
	if len(parts) > 1 {
		first := strings.ToLower(parts[0])
		last := strings.ToLower(parts[len(parts)-1])
		add(first)
		add(last)
		if first != "" {
			add(first[:1] + ". " + last)
			add(first[:1] + " " + last)
		}
	}
	return variants
}

// BestMatch scores every candidate against the target across all variant
// pairs and returns the highest-scoring member whose score meets the
// threshold. This is the stricter cross-checking path, not the primary
// ingestion lookup.
func BestMatch(target string, candidates []domain.Member, threshold float64) (domain.Member, bool) {
	if strings.TrimSpace(target) == "" {
		return domain.Member{}, false
	}

	targetVariants := Variants(target)
	var best domain.Member
	bestScore := 0.0
	found := false

	for _, m := range candidates {
		for _, tv := range targetVariants {
			for _, mv := range Variants(m.FullName()) {
				score := Ratio(tv, mv)
				if score > bestScore && score >= threshold {
					bestScore = score
					best = m
					found = true
				}
			}
		}
	}
	return best, found
}

// Ratio is the Ratcliff/Obershelp similarity of two strings: twice the
// number of matching characters over the total length, with matches found
// recursively around the longest common substring. Two empty strings are
// identical (1.0).
func Ratio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matchingRunes(ra, rb)) / float64(total)
}

func matchingRunes(a, b []rune) int {
	ai, bi, size := longestCommonRun(a, b)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a[:ai], b[:bi]) +
		matchingRunes(a[ai+size:], b[bi+size:])
}

// longestCommonRun finds the longest common substring of a and b,
// returning its start in each and its length. Earliest occurrence in a
// wins ties.
func longestCommonRun(a, b []rune) (ai, bi, size int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}
	// lengths[j] = length of the common run ending at a[i-1], b[j-1]
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				if cur[j] > size {
					size = cur[j]
					ai = i - size
					bi = j - size
				}
			} else {
				cur[j] = 0
			}
		}
		prev, cur = cur, prev
	}
	return ai, bi, size
}
