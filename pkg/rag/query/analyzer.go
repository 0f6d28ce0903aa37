package query

import (
	"regexp"
	"strings"
)

// AcronymExpansion maps a domain acronym to its spelled-out form.
type AcronymExpansion struct {
	Acronym   string
	Expansion string
}

// DefaultAcronyms is the fixed domain vocabulary. Declaration order matters:
// expansions are appended in this order.
var DefaultAcronyms = []AcronymExpansion{
	{Acronym: "OIS", Expansion: "Operational Information System"},
	{Acronym: "SLA", Expansion: "Service Level Agreement"},
	{Acronym: "RFP", Expansion: "Request for Proposal"},
	{Acronym: "KPI", Expansion: "Key Performance Indicator"},
	{Acronym: "MOU", Expansion: "Memorandum of Understanding"},
	{Acronym: "PIC", Expansion: "Person in Charge"},
}

// Analyzer expands domain acronyms found in a query. The expanded form is
// used for retrieval only and is never shown to the user or the model.
type Analyzer struct {
	acronyms []AcronymExpansion
	patterns []*regexp.Regexp
}

func NewAnalyzer(acronyms []AcronymExpansion) *Analyzer {
	if acronyms == nil {
		acronyms = DefaultAcronyms
	}
	patterns := make([]*regexp.Regexp, len(acronyms))
	for i, a := range acronyms {
		// Whole-word, case-insensitive
		patterns[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(a.Acronym) + `\b`)
	}
	return &Analyzer{
		acronyms: acronyms,
		patterns: patterns,
	}
}

// Expand returns the query with the expansion of every matching acronym
// appended once, in declaration order. Queries without acronyms pass through
// unchanged.
func (a *Analyzer) Expand(rawQuery string) string {
	var expansions []string
	for i, acronym := range a.acronyms {
		if a.patterns[i].MatchString(rawQuery) {
			expansions = append(expansions, acronym.Expansion)
		}
	}
	if len(expansions) == 0 {
		return rawQuery
	}
	return rawQuery + " " + strings.Join(expansions, " ")
}
