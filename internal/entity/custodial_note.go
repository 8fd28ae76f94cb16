package entity

import (
	"time"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// CustodialNote is a free-standing custodial concern, or one per-location
// note synthesized from a monthly feedback document.
type CustodialNote struct {
	ID                  int       `json:"id"`
	InspectorName       *string   `json:"inspectorName"`
	School              string    `json:"school"`
	Date                string    `json:"date"`
	Location            string    `json:"location"`
	LocationDescription *string   `json:"locationDescription"`
	Notes               string    `json:"notes"`
	Images              []string  `json:"images"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Validate checks required fields prior to persistence.
func (n *CustodialNote) Validate() error {
	v := common.NewValidator()
	v.Field("school", n.School, common.Required)
	v.Field("date", n.Date, common.Required)
	v.Field("location", n.Location, common.Required)
	v.Field("notes", n.Notes, common.Required)
	return v.Error()
}
