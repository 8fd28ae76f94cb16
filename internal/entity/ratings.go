package entity

// Ratings holds the eleven nullable integer rating fields shared by
// inspections and room inspections. Values are conventionally 1-5 but the
// schema deliberately does not range-check them.
type Ratings struct {
	Floors                     *int `json:"floors"`
	VerticalHorizontalSurfaces *int `json:"verticalHorizontalSurfaces"`
	Ceiling                    *int `json:"ceiling"`
	Restrooms                  *int `json:"restrooms"`
	CustomerSatisfaction       *int `json:"customerSatisfaction"`
	Trash                      *int `json:"trash"`
	ProjectCleaning            *int `json:"projectCleaning"`
	ActivitySupport            *int `json:"activitySupport"`
	SafetyCompliance           *int `json:"safetyCompliance"`
	Equipment                  *int `json:"equipment"`
	Monitoring                 *int `json:"monitoring"`
}
