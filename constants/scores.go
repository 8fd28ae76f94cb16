package constants

// ScoreCategory identifies one of the seven monthly feedback score
// categories.
type ScoreCategory string

const (
	CustomerSatisfaction ScoreCategory = "customerSatisfaction"
	Trash                ScoreCategory = "trash"
	ProjectCleaning      ScoreCategory = "projectCleaning"
	ActivitySupport      ScoreCategory = "activitySupport"
	SafetyCompliance     ScoreCategory = "safetyCompliance"
	Equipment            ScoreCategory = "equipment"
	Monitoring           ScoreCategory = "monitoring"
)

// ScoreCategories is the fixed rendering order for score blocks.
var ScoreCategories = []ScoreCategory{
	CustomerSatisfaction,
	Trash,
	ProjectCleaning,
	ActivitySupport,
	SafetyCompliance,
	Equipment,
	Monitoring,
}

var scoreLabels = map[ScoreCategory]string{
	CustomerSatisfaction: "Customer Satisfaction",
	Trash:                "Trash",
	ProjectCleaning:      "Project Cleaning",
	ActivitySupport:      "Activity Support",
	SafetyCompliance:     "Safety & Compliance",
	Equipment:            "Equipment",
	// monitoring is labeled "Performance Efficiency" in the source emails.
	Monitoring: "Performance Efficiency",
}

// Label returns the human-readable label used in emails and note bodies.
func (c ScoreCategory) Label() string {
	if l, ok := scoreLabels[c]; ok {
		return l
	}
	return string(c)
}
