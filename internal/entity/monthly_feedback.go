package entity

import (
	"time"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// MonthlyFeedback is one uploaded monthly report PDF plus its extracted text
// and metadata. One row is created per document import, independent of the
// custodial notes it spawns.
type MonthlyFeedback struct {
	ID            int       `json:"id"`
	School        string    `json:"school"`
	Month         string    `json:"month"`
	Year          int       `json:"year"`
	PDFURL        string    `json:"pdfUrl"`
	FileName      string    `json:"fileName"`
	ExtractedText *string   `json:"extractedText"`
	Notes         *string   `json:"notes"`
	UploadedBy    *string   `json:"uploadedBy"`
	FileSize      int64     `json:"fileSize"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Validate checks required fields prior to persistence.
func (m *MonthlyFeedback) Validate() error {
	v := common.NewValidator()
	v.Field("school", m.School, common.Required)
	v.Field("month", m.Month, common.Required)
	v.Field("year", m.Year, common.Required)
	v.Field("fileName", m.FileName, common.Required)
	return v.Error()
}
