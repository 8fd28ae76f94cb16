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

// RoomInspectionRepository is the persistence gateway for per-room ratings.
// Rooms are create/read only; no update path exists.
type RoomInspectionRepository interface {
	Create(ctx context.Context, room *entity.RoomInspection) (*entity.RoomInspection, error)
	List(ctx context.Context) ([]*entity.RoomInspection, error)
	Get(ctx context.Context, id int) (*entity.RoomInspection, error)
	ListByBuilding(ctx context.Context, buildingInspectionID int) ([]*entity.RoomInspection, error)
}

type roomInspectionRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewRoomInspectionRepository(db *DB, logger *slog.Logger) RoomInspectionRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &roomInspectionRepository{db: db, logger: logger}
}

const roomColumns = `id, building_inspection_id, room_type, room_identifier,
	floors, vertical_horizontal_surfaces, ceiling, restrooms, customer_satisfaction,
	trash, project_cleaning, activity_support, safety_compliance, equipment, monitoring,
	notes, images, created_at`

func (r *roomInspectionRepository) Create(ctx context.Context, room *entity.RoomInspection) (*entity.RoomInspection, error) {
	if err := room.Validate(); err != nil {
		return nil, err
	}

	room.CreatedAt = time.Now().UTC()
	query := r.db.rebind(`INSERT INTO room_inspections (
		building_inspection_id, room_type, room_identifier,
		floors, vertical_horizontal_surfaces, ceiling, restrooms, customer_satisfaction,
		trash, project_cleaning, activity_support, safety_compliance, equipment, monitoring,
		notes, images, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING id`)

	err := r.db.SQL.QueryRowContext(ctx, query,
		room.BuildingInspectionID, room.RoomType, room.RoomIdentifier,
		room.Floors, room.VerticalHorizontalSurfaces, room.Ceiling, room.Restrooms, room.CustomerSatisfaction,
		room.Trash, room.ProjectCleaning, room.ActivitySupport, room.SafetyCompliance, room.Equipment, room.Monitoring,
		room.Notes, marshalList(room.Images), room.CreatedAt,
	).Scan(&room.ID)
	if err != nil {
		r.logger.Error("room_inspections.create.failed", "error", err)
		return nil, fmt.Errorf("%w: insert room inspection: %v", common.ErrDatabase, err)
	}
	if room.Images == nil {
		room.Images = []string{}
	}
	return room, nil
}

func (r *roomInspectionRepository) List(ctx context.Context) ([]*entity.RoomInspection, error) {
	query := r.db.rebind(`SELECT ` + roomColumns + ` FROM room_inspections ORDER BY created_at`)
	return r.queryRooms(ctx, query)
}

func (r *roomInspectionRepository) ListByBuilding(ctx context.Context, buildingInspectionID int) ([]*entity.RoomInspection, error) {
	query := r.db.rebind(`SELECT ` + roomColumns + ` FROM room_inspections WHERE building_inspection_id = $1 ORDER BY created_at`)
	return r.queryRooms(ctx, query, buildingInspectionID)
}

func (r *roomInspectionRepository) Get(ctx context.Context, id int) (*entity.RoomInspection, error) {
	query := r.db.rebind(`SELECT ` + roomColumns + ` FROM room_inspections WHERE id = $1`)
	room, err := scanRoomInspection(r.db.SQL.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: room inspection %d", common.ErrNotFound, id)
	}
	return room, err
}

func (r *roomInspectionRepository) queryRooms(ctx context.Context, query string, args ...any) ([]*entity.RoomInspection, error) {
	rows, err := r.db.SQL.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("room_inspections.list.failed", "error", err)
		return nil, fmt.Errorf("%w: list room inspections: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := []*entity.RoomInspection{}
	for rows.Next() {
		room, err := scanRoomInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func scanRoomInspection(row rowScanner) (*entity.RoomInspection, error) {
	var (
		room       entity.RoomInspection
		identifier sql.NullString
		notes      sql.NullString
		images     string
		ratings    [11]sql.NullInt64
	)

	err := row.Scan(
		&room.ID, &room.BuildingInspectionID, &room.RoomType, &identifier,
		&ratings[0], &ratings[1], &ratings[2], &ratings[3], &ratings[4],
		&ratings[5], &ratings[6], &ratings[7], &ratings[8], &ratings[9], &ratings[10],
		&notes, &images, &room.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.RoomIdentifier = nullToStrPtr(identifier)
	room.Notes = nullToStrPtr(notes)
	room.Images = unmarshalList(images)
	applyRatings(&room.Ratings, ratings)
	return &room, nil
}
