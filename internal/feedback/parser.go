package feedback

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ca-facilities/custodial-command/constants"
)

// Parsing is landmark-matching over free text, not a grammar. Each field has
// its own extraction function so individual patterns can be swapped without
// touching the others. Parse never returns an error: missing landmarks
// degrade to nil/empty fields.

var (
	reSchool    = regexp.MustCompile(`(?i)Livingston Collegiate|LCA|GWC|CBR|ASA`)
	reDate      = regexp.MustCompile(`(\w{3}), (\w{3}) (\d{1,2}), (\d{4})`)
	reInspector = regexp.MustCompile(`([A-Z][a-z]+(?:')?(?:\s+[A-Z][a-z]+)*)\s+<\w+@`)

	scorePatterns = map[constants.ScoreCategory]*regexp.Regexp{
		constants.CustomerSatisfaction: regexp.MustCompile(`(?i)Customer Satisfaction.*?-\s*(\d)`),
		constants.Trash:                regexp.MustCompile(`(?i)Trash.*?-\s*(\d)`),
		constants.ProjectCleaning:      regexp.MustCompile(`(?i)Project Cleaning.*?-\s*(\d)`),
		constants.ActivitySupport:      regexp.MustCompile(`(?i)Activity Support.*?-\s*(\d)`),
		constants.SafetyCompliance:     regexp.MustCompile(`(?i)Safety.*?Compliance.*?-\s*(\d)`),
		constants.Equipment:            regexp.MustCompile(`(?i)Equipment.*?-\s*(\d)`),
		constants.Monitoring:           regexp.MustCompile(`(?i)Performance Efficiency.*?-\s*(\d)`),
	}

	reGlows = regexp.MustCompile(`(?i)Glows\s+((?:- .+\n?)+)`)
	reGrows = regexp.MustCompile(`(?i)Grows\s+((?:- .+\n?)+)`)

	reLeadingDash = regexp.MustCompile(`^-\s*`)
	reRoomLead    = regexp.MustCompile(`^\d{4}`)
	reRoomSplit   = regexp.MustCompile(`^(\d{4}|[\w\s]+?)\s*-\s*(.+)`)

	sectionHeaders = buildSectionHeaders()
	reSectionEnd   = buildSectionEnd()
)

func buildSectionHeaders() map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(constants.LocationSections))
	for _, s := range constants.LocationSections {
		out[s] = regexp.MustCompile(`(?i)` + s + `\s+`)
	}
	return out
}

// buildSectionEnd compiles the block terminator: the next section header, a
// closing phrase, or end of text (handled by the caller).
func buildSectionEnd() *regexp.Regexp {
	terms := make([]string, 0, len(constants.LocationSections)+len(constants.ClosingPhrases))
	terms = append(terms, constants.LocationSections...)
	for _, p := range constants.ClosingPhrases {
		terms = append(terms, regexp.QuoteMeta(p))
	}
	return regexp.MustCompile(`(?i)` + strings.Join(terms, "|"))
}

// Parse extracts a Record from unstructured email or PDF text.
func Parse(text string) Record {
	rec := Record{
		Scores:    map[constants.ScoreCategory]int{},
		Glows:     []string{},
		Grows:     []string{},
		Locations: []LocationEntry{},
	}

	rec.School = extractSchool(text)
	rec.Date, rec.Month, rec.Year = extractDate(text)
	rec.Inspector = extractInspector(text)
	rec.Scores = extractScores(text)
	rec.Glows = extractBullets(text, reGlows)
	rec.Grows = extractBullets(text, reGrows)
	rec.Locations = extractLocations(text)

	return rec
}

// extractSchool finds the first known school code or name and normalizes it.
func extractSchool(text string) *string {
	m := reSchool.FindString(text)
	if m == "" {
		return nil
	}
	s := constants.NormalizeSchool(m)
	return &s
}

// extractDate matches a "Weekday, Mon DD, YYYY" header anywhere in the text
// and decomposes it into an ISO date, the month abbreviation, and the year.
func extractDate(text string) (date, month *string, year *int) {
	m := reDate.FindStringSubmatch(text)
	if m == nil {
		return nil, nil, nil
	}
	mon := m[2]
	day, err := strconv.Atoi(m[3])
	if err != nil {
		return nil, nil, nil
	}
	y, err := strconv.Atoi(m[4])
	if err != nil {
		return nil, nil, nil
	}
	iso := fmt.Sprintf("%s-%s-%02d", m[4], constants.MonthNumber(mon), day)
	return &iso, &mon, &y
}

// extractInspector is a heuristic: capitalized word(s) immediately preceding
// an email-style angle-bracket address.
func extractInspector(text string) *string {
	m := reInspector.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	name := m[1]
	return &name
}

// extractScores locates each category by its "<Label> ... - <digit>"
// pattern. Categories whose pattern does not match are absent from the map.
func extractScores(text string) map[constants.ScoreCategory]int {
	scores := make(map[constants.ScoreCategory]int, len(scorePatterns))
	for cat, re := range scorePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		scores[cat] = n
	}
	return scores
}

// extractBullets captures the block after a "Glows"/"Grows" header and keeps
// only its dash-prefixed lines, stripped of the leading dash.
func extractBullets(text string, re *regexp.Regexp) []string {
	out := []string{}
	m := re.FindStringSubmatch(text)
	if m == nil {
		return out
	}
	for _, line := range strings.Split(m[1], "\n") {
		t := strings.TrimSpace(line)
		if !strings.HasPrefix(t, "-") {
			continue
		}
		out = append(out, strings.TrimSpace(reLeadingDash.ReplaceAllString(t, "")))
	}
	return out
}

// extractLocations walks the fixed section headers in order. Each header's
// block runs to the next recognized header, a closing phrase, or end of
// text. Within a block, a line produces an entry only if it starts with a
// dash or a 4-digit room number.
func extractLocations(text string) []LocationEntry {
	entries := []LocationEntry{}

	for _, section := range constants.LocationSections {
		loc := sectionHeaders[section].FindStringIndex(text)
		if loc == nil {
			continue
		}
		rest := text[loc[1]:]
		end := len(rest)
		if m := reSectionEnd.FindStringIndex(rest); m != nil {
			end = m[0]
		}

		category := strings.ToLower(section)
		for _, line := range strings.Split(rest[:end], "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if !strings.HasPrefix(trimmed, "-") && !reRoomLead.MatchString(trimmed) {
				continue
			}
			if m := reRoomSplit.FindStringSubmatch(trimmed); m != nil {
				room := strings.TrimSpace(m[1])
				entries = append(entries, LocationEntry{
					Category: category,
					Room:     &room,
					Notes:    strings.TrimSpace(m[2]),
				})
			} else {
				entries = append(entries, LocationEntry{
					Category: category,
					Room:     nil,
					Notes:    reLeadingDash.ReplaceAllString(trimmed, ""),
				})
			}
		}
	}

	return entries
}
