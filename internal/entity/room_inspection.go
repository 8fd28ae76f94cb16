package entity

import (
	"time"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// RoomInspection is one room's ratings within a whole-building inspection.
// Rows are created once per room visited and never updated in place. The
// building reference is not enforced by a foreign key; deleting the parent
// inspection intentionally leaves these rows behind.
type RoomInspection struct {
	ID                   int     `json:"id"`
	BuildingInspectionID int     `json:"buildingInspectionId"`
	RoomType             string  `json:"roomType"`
	RoomIdentifier       *string `json:"roomIdentifier"`
	Ratings
	Notes     *string   `json:"notes"`
	Images    []string  `json:"images"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate checks required fields prior to persistence.
func (r *RoomInspection) Validate() error {
	v := common.NewValidator()
	v.Field("buildingInspectionId", r.BuildingInspectionID, common.Required)
	v.Field("roomType", r.RoomType, common.Required)
	return v.Error()
}
