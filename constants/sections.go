package constants

// LocationSections is the fixed, ordered set of section headers recognized
// in monthly feedback documents. Each header introduces per-location
// feedback lines up to the next header or a closing phrase.
var LocationSections = []string{
	"BLEACHERS",
	"GYM",
	"CLASSROOMS",
	"CAFETERIA",
	"OFFICES",
	"HALLWAYS",
	"RESTROOMS",
	"STAIRWELLS",
}

// ClosingPhrases terminate the last location section of a document.
var ClosingPhrases = []string{
	"Please let me know",
	"Thanks,",
}
