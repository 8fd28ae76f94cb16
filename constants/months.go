package constants

import "strings"

// FallbackMonthNumber is what date parsing substitutes for a month
// abbreviation it does not recognize. The upstream data entry tooling has
// always defaulted unknown months to January rather than discarding the
// date, and downstream reports depend on that.
const FallbackMonthNumber = "01"

var monthNumbers = map[string]string{
	"Jan": "01", "Feb": "02", "Mar": "03", "Apr": "04",
	"May": "05", "Jun": "06", "Jul": "07", "Aug": "08",
	"Sep": "09", "Oct": "10", "Nov": "11", "Dec": "12",
}

var monthNames = map[string]string{
	"jan": "January", "feb": "February", "mar": "March", "apr": "April",
	"may": "May", "jun": "June", "jul": "July", "aug": "August",
	"sep": "September", "oct": "October", "nov": "November", "dec": "December",
}

// MonthAbbreviations lists the 3-letter abbreviations in calendar order.
var MonthAbbreviations = []string{
	"jan", "feb", "mar", "apr", "may", "jun",
	"jul", "aug", "sep", "oct", "nov", "dec",
}

// MonthNumber converts a 3-letter month abbreviation ("Jan".."Dec") to its
// two-digit month number, falling back to FallbackMonthNumber.
func MonthNumber(abbr string) string {
	if n, ok := monthNumbers[abbr]; ok {
		return n
	}
	return FallbackMonthNumber
}

// FullMonthName converts a 3-letter abbreviation to the full month name.
// Unknown abbreviations pass through unchanged.
func FullMonthName(abbr string) string {
	if n, ok := monthNames[strings.ToLower(abbr)]; ok {
		return n
	}
	return abbr
}
