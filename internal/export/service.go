package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ca-facilities/custodial-command/internal/entity"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

// Service is a small façade over the inspection repository that produces
// XLSX bytes for admin exports.
type Service struct {
	inspections repository.InspectionRepository
	logger      *slog.Logger
}

func NewService(inspections repository.InspectionRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{inspections: inspections, logger: logger}
}

var exportHeaders = []string{
	"Date",
	"School",
	"Inspector",
	"Type",
	"Location",
	"Room",
	"Floors",
	"Vertical/Horizontal Surfaces",
	"Ceiling",
	"Restrooms",
	"Customer Satisfaction",
	"Trash",
	"Project Cleaning",
	"Activity Support",
	"Safety & Compliance",
	"Equipment",
	"Performance Efficiency",
	"Notes",
}

// Filter narrows an export. Zero values mean no restriction; From and To are
// inclusive ISO dates compared against the inspection date.
type Filter struct {
	School string
	From   string
	To     string
}

func (f Filter) match(in *entity.Inspection) bool {
	if f.School != "" && in.School != f.School {
		return false
	}
	if f.From != "" && in.Date < f.From {
		return false
	}
	if f.To != "" && in.Date > f.To {
		return false
	}
	return true
}

// ExportInspectionsXLSX returns an XLSX workbook of the inspections matching
// the filter.
func (s *Service) ExportInspectionsXLSX(ctx context.Context, filter Filter) ([]byte, error) {
	start := time.Now()

	recs, err := s.inspections.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("query inspections: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Inspections"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, r := range recs {
		if !filter.match(r) {
			continue
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, r.Date)
		write(2, r.School)
		write(3, strVal(r.InspectorName))
		write(4, r.InspectionType)
		write(5, r.LocationDescription)
		write(6, strVal(r.RoomNumber))
		for i, v := range ratingValues(&r.Ratings) {
			if v != nil {
				write(7+i, *v)
			} else {
				write(7+i, "")
			}
		}
		write(18, strVal(r.Notes))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}

	s.logger.Info("export.inspections.done",
		"rows", row-2, "school", filter.School, "from", filter.From, "to", filter.To, "duration", time.Since(start))
	return buf.Bytes(), nil
}

func ratingValues(r *entity.Ratings) []*int {
	return []*int{
		r.Floors,
		r.VerticalHorizontalSurfaces,
		r.Ceiling,
		r.Restrooms,
		r.CustomerSatisfaction,
		r.Trash,
		r.ProjectCleaning,
		r.ActivitySupport,
		r.SafetyCompliance,
		r.Equipment,
		r.Monitoring,
	}
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
