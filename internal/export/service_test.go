package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/entity"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

func setupInspections(t *testing.T) repository.InspectionRepository {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, repository.Migrate(context.Background(), db))
	return repository.NewInspectionRepository(db, nil)
}

func seedInspection(t *testing.T, repo repository.InspectionRepository, school, date string, trash int) {
	t.Helper()
	inspector := "Dana Cole"
	in := &entity.Inspection{
		InspectorName:  &inspector,
		School:         school,
		Date:           date,
		InspectionType: "whole_building",
	}
	in.Trash = &trash
	_, err := repo.Create(context.Background(), in)
	require.NoError(t, err)
}

func TestExportInspectionsXLSX(t *testing.T) {
	repo := setupInspections(t)
	seedInspection(t, repo, "LCA", "2025-12-06", 4)
	seedInspection(t, repo, "GWC", "2025-12-06", 2)

	svc := NewService(repo, nil)
	data, err := svc.ExportInspectionsXLSX(context.Background(), Filter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inspections")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Trash", rows[0][11])
	assert.Equal(t, "LCA", rows[1][1])
	assert.Equal(t, "Dana Cole", rows[1][2])
	assert.Equal(t, "4", rows[1][11])
	assert.Equal(t, "GWC", rows[2][1])
}

func TestExportInspectionsXLSXSchoolFilter(t *testing.T) {
	repo := setupInspections(t)
	seedInspection(t, repo, "LCA", "2025-12-06", 4)
	seedInspection(t, repo, "GWC", "2025-12-06", 2)

	svc := NewService(repo, nil)
	data, err := svc.ExportInspectionsXLSX(context.Background(), Filter{School: "GWC"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inspections")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "GWC", rows[1][1])
}

func TestExportInspectionsXLSXDateFilter(t *testing.T) {
	repo := setupInspections(t)
	seedInspection(t, repo, "LCA", "2025-10-01", 3)
	seedInspection(t, repo, "LCA", "2025-11-15", 4)
	seedInspection(t, repo, "LCA", "2025-12-06", 5)

	svc := NewService(repo, nil)
	data, err := svc.ExportInspectionsXLSX(context.Background(),
		Filter{From: "2025-11-01", To: "2025-11-30"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Inspections")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025-11-15", rows[1][0])

	// bounds are inclusive
	data, err = svc.ExportInspectionsXLSX(context.Background(),
		Filter{From: "2025-11-15", To: "2025-12-06"})
	require.NoError(t, err)
	f2, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f2.Close()
	rows, err = f2.GetRows("Inspections")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestExportInspectionsXLSXEmpty(t *testing.T) {
	svc := NewService(setupInspections(t), nil)
	data, err := svc.ExportInspectionsXLSX(context.Background(), Filter{})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestExportPropagatesRepositoryErrors(t *testing.T) {
	svc := NewService(failingRepo{}, nil)
	_, err := svc.ExportInspectionsXLSX(context.Background(), Filter{})
	assert.ErrorIs(t, err, common.ErrDatabase)
}

type failingRepo struct{}

func (failingRepo) Create(context.Context, *entity.Inspection) (*entity.Inspection, error) {
	return nil, common.ErrDatabase
}
func (failingRepo) List(context.Context) ([]*entity.Inspection, error) {
	return nil, common.ErrDatabase
}
func (failingRepo) Get(context.Context, int) (*entity.Inspection, error) {
	return nil, common.ErrDatabase
}
func (failingRepo) Update(context.Context, int, *entity.InspectionPatch) (*entity.Inspection, error) {
	return nil, common.ErrDatabase
}
func (failingRepo) Delete(context.Context, int) error { return common.ErrDatabase }
