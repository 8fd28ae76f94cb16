package feedback

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ca-facilities/custodial-command/constants"
)

// Metadata is the school/month/year triple a batch import needs when the
// caller supplies no explicit flags.
type Metadata struct {
	School string
	Month  string
	Year   int
}

var (
	reFilenameSchool = regexp.MustCompile(`(?i)LCA|GWC|CBR|ASA`)
	reFilenameMonth  = regexp.MustCompile(`(?i)` + strings.Join(constants.MonthAbbreviations, "|"))
	reFilenameYear   = regexp.MustCompile(`20\d{2}`)
)

// ResolveFilename derives school, month, and year from a conventional
// filename like "LCA Dec 2025.pdf". This is a best-effort heuristic with
// silent defaults: malformed filenames produce "Unknown" (and the current
// year), never an error.
func ResolveFilename(filename string, now func() time.Time) Metadata {
	if now == nil {
		now = time.Now
	}

	meta := Metadata{
		School: UnknownValue,
		Month:  UnknownValue,
		Year:   now().Year(),
	}

	if m := reFilenameSchool.FindString(filename); m != "" {
		meta.School = strings.ToUpper(m)
	}
	if m := reFilenameMonth.FindString(filename); m != "" {
		meta.Month = constants.FullMonthName(m)
	}
	if m := reFilenameYear.FindString(filename); m != "" {
		if y, err := strconv.Atoi(m); err == nil {
			meta.Year = y
		}
	}
	return meta
}
