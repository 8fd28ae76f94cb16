package constants

import "strings"

// SchoolCodes holds the known school codes, in match order.
var SchoolCodes = []string{"LCA", "GWC", "CBR", "ASA"}

// livingstonLongName is the long-form name that normalizes to LCA.
const livingstonLongName = "Livingston Collegiate"

// SchoolNamePatterns returns every phrase that identifies a school in free
// text, long names first so they win over their embedded codes.
func SchoolNamePatterns() []string {
	out := make([]string, 0, len(SchoolCodes)+1)
	out = append(out, livingstonLongName)
	out = append(out, SchoolCodes...)
	return out
}

// NormalizeSchool maps a matched school phrase to its canonical code.
func NormalizeSchool(match string) string {
	if strings.Contains(strings.ToLower(match), "livingston") {
		return "LCA"
	}
	return strings.ToUpper(match)
}
