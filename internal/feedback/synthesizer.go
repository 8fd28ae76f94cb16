package feedback

import (
	"strconv"
	"strings"
	"time"

	"github.com/ca-facilities/custodial-command/constants"
	"github.com/ca-facilities/custodial-command/internal/entity"
)

// UnknownValue fills inspector and school fields the parser could not
// resolve.
const UnknownValue = "Unknown"

// SynthesizeNoteBody renders one location entry plus the document's shared
// scores, glows, and grows into a single note body. Every note from the same
// document carries an identical copy of the shared blocks; the
// denormalization is deliberate so each note reads standalone.
func SynthesizeNoteBody(entry LocationEntry, rec Record) string {
	var b strings.Builder

	b.WriteString(entry.Notes)
	b.WriteString("\n\nOverall Scores:\n")
	for _, cat := range constants.ScoreCategories {
		b.WriteString("- ")
		b.WriteString(cat.Label())
		b.WriteString(": ")
		if v, ok := rec.Scores[cat]; ok {
			b.WriteString(strconv.Itoa(v))
		} else {
			b.WriteString("N/A")
		}
		b.WriteString("\n")
	}

	b.WriteString("\nGlows:\n")
	b.WriteString(joinBullets(rec.Glows))
	b.WriteString("\n\nGrows:\n")
	b.WriteString(joinBullets(rec.Grows))

	return strings.TrimSpace(b.String())
}

func joinBullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}

// BuildCustodialNote assembles the persistable note for one location entry.
// Unresolved inspector and school default to "Unknown"; a missing document
// date defaults to today.
func BuildCustodialNote(rec Record, entry LocationEntry, now func() time.Time) entity.CustodialNote {
	if now == nil {
		now = time.Now
	}

	inspector := UnknownValue
	if rec.Inspector != nil {
		inspector = *rec.Inspector
	}
	school := UnknownValue
	if rec.School != nil {
		school = *rec.School
	}
	date := now().UTC().Format("2006-01-02")
	if rec.Date != nil {
		date = *rec.Date
	}

	return entity.CustodialNote{
		InspectorName:       &inspector,
		School:              school,
		Date:                date,
		Location:            entry.Category,
		LocationDescription: entry.Room,
		Notes:               SynthesizeNoteBody(entry, rec),
		Images:              []string{},
	}
}
