package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/entity"
)

// InspectionRepository is the persistence gateway for inspections.
type InspectionRepository interface {
	Create(ctx context.Context, in *entity.Inspection) (*entity.Inspection, error)
	List(ctx context.Context) ([]*entity.Inspection, error)
	Get(ctx context.Context, id int) (*entity.Inspection, error)
	Update(ctx context.Context, id int, patch *entity.InspectionPatch) (*entity.Inspection, error)
	Delete(ctx context.Context, id int) error
}

type inspectionRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewInspectionRepository(db *DB, logger *slog.Logger) InspectionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &inspectionRepository{db: db, logger: logger}
}

const inspectionColumns = `id, inspector_name, school, date, inspection_type, location_description,
	room_number, location_category, building_name, building_inspection_id,
	floors, vertical_horizontal_surfaces, ceiling, restrooms, customer_satisfaction,
	trash, project_cleaning, activity_support, safety_compliance, equipment, monitoring,
	notes, images, verified_rooms, is_completed, created_at`

func (r *inspectionRepository) Create(ctx context.Context, in *entity.Inspection) (*entity.Inspection, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	in.CreatedAt = time.Now().UTC()
	query := r.db.rebind(`INSERT INTO inspections (
		inspector_name, school, date, inspection_type, location_description,
		room_number, location_category, building_name, building_inspection_id,
		floors, vertical_horizontal_surfaces, ceiling, restrooms, customer_satisfaction,
		trash, project_cleaning, activity_support, safety_compliance, equipment, monitoring,
		notes, images, verified_rooms, is_completed, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
	RETURNING id`)

	err := r.db.SQL.QueryRowContext(ctx, query,
		in.InspectorName, in.School, in.Date, in.InspectionType, in.LocationDescription,
		in.RoomNumber, in.LocationCategory, in.BuildingName, in.BuildingInspectionID,
		in.Floors, in.VerticalHorizontalSurfaces, in.Ceiling, in.Restrooms, in.CustomerSatisfaction,
		in.Trash, in.ProjectCleaning, in.ActivitySupport, in.SafetyCompliance, in.Equipment, in.Monitoring,
		in.Notes, marshalList(in.Images), marshalList(in.VerifiedRooms), in.IsCompleted, in.CreatedAt,
	).Scan(&in.ID)
	if err != nil {
		r.logger.Error("inspections.create.failed", "error", err)
		return nil, fmt.Errorf("%w: insert inspection: %v", common.ErrDatabase, err)
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.VerifiedRooms == nil {
		in.VerifiedRooms = []string{}
	}
	return in, nil
}

func (r *inspectionRepository) List(ctx context.Context) ([]*entity.Inspection, error) {
	query := r.db.rebind(`SELECT ` + inspectionColumns + ` FROM inspections ORDER BY created_at`)
	rows, err := r.db.SQL.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("inspections.list.failed", "error", err)
		return nil, fmt.Errorf("%w: list inspections: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := []*entity.Inspection{}
	for rows.Next() {
		in, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}

func (r *inspectionRepository) Get(ctx context.Context, id int) (*entity.Inspection, error) {
	query := r.db.rebind(`SELECT ` + inspectionColumns + ` FROM inspections WHERE id = $1`)
	in, err := scanInspection(r.db.SQL.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: inspection %d", common.ErrNotFound, id)
	}
	return in, err
}

func (r *inspectionRepository) Update(ctx context.Context, id int, patch *entity.InspectionPatch) (*entity.Inspection, error) {
	in, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	patch.Apply(in)

	query := r.db.rebind(`UPDATE inspections SET
		inspector_name = $1, school = $2, date = $3, inspection_type = $4, location_description = $5,
		room_number = $6, location_category = $7, building_name = $8, building_inspection_id = $9,
		floors = $10, vertical_horizontal_surfaces = $11, ceiling = $12, restrooms = $13,
		customer_satisfaction = $14, trash = $15, project_cleaning = $16, activity_support = $17,
		safety_compliance = $18, equipment = $19, monitoring = $20,
		notes = $21, images = $22, verified_rooms = $23, is_completed = $24
	WHERE id = $25`)

	_, err = r.db.SQL.ExecContext(ctx, query,
		in.InspectorName, in.School, in.Date, in.InspectionType, in.LocationDescription,
		in.RoomNumber, in.LocationCategory, in.BuildingName, in.BuildingInspectionID,
		in.Floors, in.VerticalHorizontalSurfaces, in.Ceiling, in.Restrooms,
		in.CustomerSatisfaction, in.Trash, in.ProjectCleaning, in.ActivitySupport,
		in.SafetyCompliance, in.Equipment, in.Monitoring,
		in.Notes, marshalList(in.Images), marshalList(in.VerifiedRooms), in.IsCompleted,
		id,
	)
	if err != nil {
		r.logger.Error("inspections.update.failed", "id", id, "error", err)
		return nil, fmt.Errorf("%w: update inspection: %v", common.ErrDatabase, err)
	}
	return in, nil
}

// Delete is a hard delete. Room inspection rows referencing the inspection
// are left in place; there is deliberately no cascade.
func (r *inspectionRepository) Delete(ctx context.Context, id int) error {
	query := r.db.rebind(`DELETE FROM inspections WHERE id = $1`)
	res, err := r.db.SQL.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Error("inspections.delete.failed", "id", id, "error", err)
		return fmt.Errorf("%w: delete inspection: %v", common.ErrDatabase, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: inspection %d", common.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInspection(row rowScanner) (*entity.Inspection, error) {
	var (
		in            entity.Inspection
		inspector     sql.NullString
		roomNumber    sql.NullString
		locCategory   sql.NullString
		buildingName  sql.NullString
		buildingID    sql.NullInt64
		notes         sql.NullString
		images        string
		verifiedRooms string
		ratings       [11]sql.NullInt64
	)

	err := row.Scan(
		&in.ID, &inspector, &in.School, &in.Date, &in.InspectionType, &in.LocationDescription,
		&roomNumber, &locCategory, &buildingName, &buildingID,
		&ratings[0], &ratings[1], &ratings[2], &ratings[3], &ratings[4],
		&ratings[5], &ratings[6], &ratings[7], &ratings[8], &ratings[9], &ratings[10],
		&notes, &images, &verifiedRooms, &in.IsCompleted, &in.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	in.InspectorName = nullToStrPtr(inspector)
	in.RoomNumber = nullToStrPtr(roomNumber)
	in.LocationCategory = nullToStrPtr(locCategory)
	in.BuildingName = nullToStrPtr(buildingName)
	in.BuildingInspectionID = nullToIntPtr(buildingID)
	in.Notes = nullToStrPtr(notes)
	in.Images = unmarshalList(images)
	in.VerifiedRooms = unmarshalList(verifiedRooms)
	applyRatings(&in.Ratings, ratings)
	return &in, nil
}

func applyRatings(r *entity.Ratings, vals [11]sql.NullInt64) {
	r.Floors = nullToIntPtr(vals[0])
	r.VerticalHorizontalSurfaces = nullToIntPtr(vals[1])
	r.Ceiling = nullToIntPtr(vals[2])
	r.Restrooms = nullToIntPtr(vals[3])
	r.CustomerSatisfaction = nullToIntPtr(vals[4])
	r.Trash = nullToIntPtr(vals[5])
	r.ProjectCleaning = nullToIntPtr(vals[6])
	r.ActivitySupport = nullToIntPtr(vals[7])
	r.SafetyCompliance = nullToIntPtr(vals[8])
	r.Equipment = nullToIntPtr(vals[9])
	r.Monitoring = nullToIntPtr(vals[10])
}
