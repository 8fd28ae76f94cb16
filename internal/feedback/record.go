package feedback

import (
	"github.com/ca-facilities/custodial-command/constants"
)

// Record is the structured result of parsing one monthly feedback document.
// Every field is independently optional: absence of a landmark in the source
// text resolves to nil/empty, never to a parse error.
type Record struct {
	School    *string                            `json:"school"`
	Date      *string                            `json:"date"` // ISO YYYY-MM-DD
	Month     *string                            `json:"month"`
	Year      *int                               `json:"year"`
	Inspector *string                            `json:"inspector"`
	Scores    map[constants.ScoreCategory]int    `json:"scores"`
	Glows     []string                           `json:"glows"`
	Grows     []string                           `json:"grows"`
	Locations []LocationEntry                    `json:"locations"`
}

// LocationEntry is one parsed (category, room, notes) tuple from a location
// section of a feedback document.
type LocationEntry struct {
	Category string  `json:"category"`
	Room     *string `json:"room"`
	Notes    string  `json:"notes"`
}
