package section

import (
	"regexp"

	"doc-collab-be/pkg/store"

	"github.com/google/uuid"
)

const (
	// SectionHitScore is assigned to passages pulled in by an explicit
	// section citation. An explicit citation always wins.
	SectionHitScore = 1.0

	// BoostFactor re-weights primary-pool results that fall inside a cited
	// section. Post-boost scores are ranking weights, not probabilities.
	BoostFactor = 1.5
)

var (
	sectionWordRe = regexp.MustCompile(`(?i)\bsection\s+(\d+)\b`)
	bareNumberRe  = regexp.MustCompile(`(^|\s)(\d+)\.`)
)

// ParseReferences extracts explicitly cited section numbers from the literal
// (non-expanded) query. Two patterns are recognized: "section <number>" and a
// bare "<number>." token. Numbers are returned deduplicated in order of first
// appearance.
func ParseReferences(rawQuery string) []string {
	seen := make(map[string]bool)
	var numbers []string

	for _, m := range sectionWordRe.FindAllStringSubmatch(rawQuery, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			numbers = append(numbers, m[1])
		}
	}
	for _, m := range bareNumberRe.FindAllStringSubmatchIndex(rawQuery, -1) {
		// A digit right after the dot makes this a decimal like "3.5",
		// not a section token. Any other follower (space, punctuation,
		// end of string) counts.
		if end := m[1]; end < len(rawQuery) && rawQuery[end] >= '0' && rawQuery[end] <= '9' {
			continue
		}
		num := rawQuery[m[4]:m[5]]
		if !seen[num] {
			seen[num] = true
			numbers = append(numbers, num)
		}
	}

	return numbers
}

// BoostMatched multiplies the similarity of results whose section id appears
// in the matched set by BoostFactor. Scores never decrease; entries outside
// the matched set pass through untouched.
func BoostMatched(results []store.SearchResult, matchedSections map[uuid.UUID]bool) []store.SearchResult {
	if len(matchedSections) == 0 {
		return results
	}
	boosted := make([]store.SearchResult, len(results))
	for i, res := range results {
		boosted[i] = res
		if matchedSections[res.SectionId] {
			boosted[i].Similarity = res.Similarity * BoostFactor
		}
	}
	return boosted
}
