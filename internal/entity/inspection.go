package entity

import (
	"time"

	"github.com/ca-facilities/custodial-command/constants"
	"github.com/ca-facilities/custodial-command/internal/common"
)

// Inspection is one submitted inspection event, either a single room or a
// whole building. Whole-building inspections accumulate completeness via
// VerifiedRooms and IsCompleted while per-room detail lives in
// RoomInspection rows referencing this row by id.
type Inspection struct {
	ID                  int     `json:"id"`
	InspectorName       *string `json:"inspectorName"`
	School              string  `json:"school"`
	Date                string  `json:"date"`
	InspectionType      string  `json:"inspectionType"`
	LocationDescription string  `json:"locationDescription"`
	RoomNumber          *string `json:"roomNumber"`
	LocationCategory    *string `json:"locationCategory"`
	BuildingName        *string `json:"buildingName"`
	// BuildingInspectionID is vestigial on Inspection itself; room detail is
	// stored in RoomInspection rows.
	BuildingInspectionID *int `json:"buildingInspectionId"`
	Ratings
	Notes         *string   `json:"notes"`
	Images        []string  `json:"images"`
	VerifiedRooms []string  `json:"verifiedRooms"`
	IsCompleted   bool      `json:"isCompleted"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate checks required fields prior to persistence. Rating values are
// accepted as-is; numeric range checks are intentionally absent.
func (i *Inspection) Validate() error {
	v := common.NewValidator()
	v.Field("school", i.School, common.Required)
	v.Field("date", i.Date, common.Required)
	v.Field("inspectionType", i.InspectionType, common.Required, common.OneOf(constants.InspectionTypes...))
	if i.InspectionType == string(constants.SingleRoom) {
		v.Field("locationDescription", i.LocationDescription, common.Required)
	}
	return v.Error()
}

// InspectionPatch carries a partial update for an inspection. Nil fields are
// left untouched by the merge.
type InspectionPatch struct {
	InspectorName        *string   `json:"inspectorName"`
	School               *string   `json:"school"`
	Date                 *string   `json:"date"`
	InspectionType       *string   `json:"inspectionType"`
	LocationDescription  *string   `json:"locationDescription"`
	RoomNumber           *string   `json:"roomNumber"`
	LocationCategory     *string   `json:"locationCategory"`
	BuildingName         *string   `json:"buildingName"`
	BuildingInspectionID *int      `json:"buildingInspectionId"`
	Floors               *int      `json:"floors"`
	VerticalHorizontal   *int      `json:"verticalHorizontalSurfaces"`
	Ceiling              *int      `json:"ceiling"`
	Restrooms            *int      `json:"restrooms"`
	CustomerSatisfaction *int      `json:"customerSatisfaction"`
	Trash                *int      `json:"trash"`
	ProjectCleaning      *int      `json:"projectCleaning"`
	ActivitySupport      *int      `json:"activitySupport"`
	SafetyCompliance     *int      `json:"safetyCompliance"`
	Equipment            *int      `json:"equipment"`
	Monitoring           *int      `json:"monitoring"`
	Notes                *string   `json:"notes"`
	Images               *[]string `json:"images"`
	VerifiedRooms        *[]string `json:"verifiedRooms"`
	IsCompleted          *bool     `json:"isCompleted"`
}

// Apply merges the supplied fields onto an inspection.
func (p *InspectionPatch) Apply(i *Inspection) {
	if p.InspectorName != nil {
		i.InspectorName = p.InspectorName
	}
	if p.School != nil {
		i.School = *p.School
	}
	if p.Date != nil {
		i.Date = *p.Date
	}
	if p.InspectionType != nil {
		i.InspectionType = *p.InspectionType
	}
	if p.LocationDescription != nil {
		i.LocationDescription = *p.LocationDescription
	}
	if p.RoomNumber != nil {
		i.RoomNumber = p.RoomNumber
	}
	if p.LocationCategory != nil {
		i.LocationCategory = p.LocationCategory
	}
	if p.BuildingName != nil {
		i.BuildingName = p.BuildingName
	}
	if p.BuildingInspectionID != nil {
		i.BuildingInspectionID = p.BuildingInspectionID
	}
	if p.Floors != nil {
		i.Floors = p.Floors
	}
	if p.VerticalHorizontal != nil {
		i.VerticalHorizontalSurfaces = p.VerticalHorizontal
	}
	if p.Ceiling != nil {
		i.Ceiling = p.Ceiling
	}
	if p.Restrooms != nil {
		i.Restrooms = p.Restrooms
	}
	if p.CustomerSatisfaction != nil {
		i.CustomerSatisfaction = p.CustomerSatisfaction
	}
	if p.Trash != nil {
		i.Trash = p.Trash
	}
	if p.ProjectCleaning != nil {
		i.ProjectCleaning = p.ProjectCleaning
	}
	if p.ActivitySupport != nil {
		i.ActivitySupport = p.ActivitySupport
	}
	if p.SafetyCompliance != nil {
		i.SafetyCompliance = p.SafetyCompliance
	}
	if p.Equipment != nil {
		i.Equipment = p.Equipment
	}
	if p.Monitoring != nil {
		i.Monitoring = p.Monitoring
	}
	if p.Notes != nil {
		i.Notes = p.Notes
	}
	if p.Images != nil {
		i.Images = *p.Images
	}
	if p.VerifiedRooms != nil {
		i.VerifiedRooms = *p.VerifiedRooms
	}
	if p.IsCompleted != nil {
		i.IsCompleted = *p.IsCompleted
	}
}
