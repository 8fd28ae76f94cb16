package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/entity"
)

func setupDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, Migrate(context.Background(), db))
	return db
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func buildingInspection() *entity.Inspection {
	return &entity.Inspection{
		InspectorName:  strPtr("Dana Cole"),
		School:         "LCA",
		Date:           "2025-12-06",
		InspectionType: "whole_building",
		BuildingName:   strPtr("Main"),
	}
}

func TestInspectionCRUD(t *testing.T) {
	db := setupDB(t)
	repo := NewInspectionRepository(db, nil)
	ctx := context.Background()

	in := buildingInspection()
	in.Floors = intPtr(4)
	in.Notes = strPtr("first pass")

	created, err := repo.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "LCA", got.School)
	require.NotNil(t, got.Floors)
	assert.Equal(t, 4, *got.Floors)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "first pass", *got.Notes)
	assert.Equal(t, []string{}, got.Images)
	assert.Equal(t, []string{}, got.VerifiedRooms)
	assert.False(t, got.IsCompleted)

	done := true
	rooms := []string{"gym"}
	updated, err := repo.Update(ctx, created.ID, &entity.InspectionPatch{
		IsCompleted:   &done,
		VerifiedRooms: &rooms,
		Ceiling:       intPtr(5),
	})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)
	assert.Equal(t, []string{"gym"}, updated.VerifiedRooms)

	// untouched fields survive the merge
	got, err = repo.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Floors)
	assert.Equal(t, 4, *got.Floors)
	require.NotNil(t, got.Ceiling)
	assert.Equal(t, 5, *got.Ceiling)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestInspectionCreateValidation(t *testing.T) {
	db := setupDB(t)
	repo := NewInspectionRepository(db, nil)

	_, err := repo.Create(context.Background(), &entity.Inspection{
		School:         "Test",
		Date:           "2025-01-01",
		InspectionType: "single_room",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrValidation))
	assert.Contains(t, err.Error(), "locationDescription")

	// nothing was inserted
	list, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

// Rating values are stored verbatim; there is no range check.
func TestInspectionRatingsUnbounded(t *testing.T) {
	db := setupDB(t)
	repo := NewInspectionRepository(db, nil)

	in := buildingInspection()
	in.Trash = intPtr(42)
	created, err := repo.Create(context.Background(), in)
	require.NoError(t, err)

	got, err := repo.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Trash)
	assert.Equal(t, 42, *got.Trash)
}

func TestInspectionCreateNoDedup(t *testing.T) {
	db := setupDB(t)
	repo := NewInspectionRepository(db, nil)
	ctx := context.Background()

	a, err := repo.Create(ctx, buildingInspection())
	require.NoError(t, err)
	b := buildingInspection()
	b.Notes = strPtr("different notes")
	created, err := repo.Create(ctx, b)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, created.ID)
}

func TestInspectionNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewInspectionRepository(db, nil)

	_, err := repo.Get(context.Background(), 999)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	err = repo.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, common.ErrNotFound))

	_, err = repo.Update(context.Background(), 999, &entity.InspectionPatch{})
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRoomInspections(t *testing.T) {
	db := setupDB(t)
	inspections := NewInspectionRepository(db, nil)
	rooms := NewRoomInspectionRepository(db, nil)
	ctx := context.Background()

	parent, err := inspections.Create(ctx, buildingInspection())
	require.NoError(t, err)

	room := &entity.RoomInspection{
		BuildingInspectionID: parent.ID,
		RoomType:             "classroom",
		RoomIdentifier:       strPtr("1204"),
	}
	room.Floors = intPtr(3)
	created, err := rooms.Create(ctx, room)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := rooms.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, parent.ID, got.BuildingInspectionID)
	assert.Equal(t, "classroom", got.RoomType)
	require.NotNil(t, got.RoomIdentifier)
	assert.Equal(t, "1204", *got.RoomIdentifier)

	byBuilding, err := rooms.ListByBuilding(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, byBuilding, 1)

	none, err := rooms.ListByBuilding(ctx, parent.ID+1)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRoomInspectionValidation(t *testing.T) {
	db := setupDB(t)
	rooms := NewRoomInspectionRepository(db, nil)

	_, err := rooms.Create(context.Background(), &entity.RoomInspection{RoomType: "classroom"})
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = rooms.Create(context.Background(), &entity.RoomInspection{BuildingInspectionID: 1})
	assert.True(t, errors.Is(err, common.ErrValidation))
}

// Deleting a building inspection leaves its room rows behind; there is no
// cascade and no foreign key.
func TestDeleteInspectionOrphansRooms(t *testing.T) {
	db := setupDB(t)
	inspections := NewInspectionRepository(db, nil)
	rooms := NewRoomInspectionRepository(db, nil)
	ctx := context.Background()

	parent, err := inspections.Create(ctx, buildingInspection())
	require.NoError(t, err)
	_, err = rooms.Create(ctx, &entity.RoomInspection{
		BuildingInspectionID: parent.ID,
		RoomType:             "gym",
	})
	require.NoError(t, err)

	require.NoError(t, inspections.Delete(ctx, parent.ID))

	orphans, err := rooms.ListByBuilding(ctx, parent.ID)
	require.NoError(t, err)
	assert.Len(t, orphans, 1)
}

func TestCustodialNotes(t *testing.T) {
	db := setupDB(t)
	repo := NewCustodialNoteRepository(db, nil)
	ctx := context.Background()

	note := &entity.CustodialNote{
		InspectorName: strPtr("Marcus Webb"),
		School:        "GWC",
		Date:          "2025-12-06",
		Location:      "cafeteria",
		Notes:         "Spill cleaned",
	}
	created, err := repo.Create(ctx, note)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cafeteria", got.Location)
	assert.Equal(t, "Spill cleaned", got.Notes)
	assert.Equal(t, []string{}, got.Images)

	_, err = repo.Create(ctx, &entity.CustodialNote{School: "GWC"})
	assert.True(t, errors.Is(err, common.ErrValidation))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMonthlyFeedback(t *testing.T) {
	db := setupDB(t)
	repo := NewMonthlyFeedbackRepository(db, nil)
	ctx := context.Background()

	fb := &entity.MonthlyFeedback{
		School:        "LCA",
		Month:         "December",
		Year:          2025,
		PDFURL:        "/uploads/lca-dec.pdf",
		FileName:      "LCA Dec 2025.pdf",
		ExtractedText: strPtr("some text"),
		FileSize:      2048,
	}
	created, err := repo.Create(ctx, fb)
	require.NoError(t, err)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "December", got.Month)
	assert.Equal(t, 2025, got.Year)
	assert.Equal(t, int64(2048), got.FileSize)
	require.NotNil(t, got.ExtractedText)
	assert.Equal(t, "some text", *got.ExtractedText)

	_, err = repo.Create(ctx, &entity.MonthlyFeedback{School: "LCA"})
	assert.True(t, errors.Is(err, common.ErrValidation))

	_, err = repo.Get(ctx, 999)
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestRebind(t *testing.T) {
	sqlite := &DB{Dialect: SQLite}
	assert.Equal(t, "SELECT * FROM t WHERE a = ? AND b = ?",
		sqlite.rebind("SELECT * FROM t WHERE a = $1 AND b = $2"))

	pg := &DB{Dialect: Postgres}
	assert.Equal(t, "SELECT * FROM t WHERE a = $1",
		pg.rebind("SELECT * FROM t WHERE a = $1"))
}
