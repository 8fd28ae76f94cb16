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

// CustodialNoteRepository is the persistence gateway for custodial notes.
// Notes are create/read only.
type CustodialNoteRepository interface {
	Create(ctx context.Context, note *entity.CustodialNote) (*entity.CustodialNote, error)
	List(ctx context.Context) ([]*entity.CustodialNote, error)
	Get(ctx context.Context, id int) (*entity.CustodialNote, error)
}

type custodialNoteRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewCustodialNoteRepository(db *DB, logger *slog.Logger) CustodialNoteRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &custodialNoteRepository{db: db, logger: logger}
}

const noteColumns = `id, inspector_name, school, date, location, location_description, notes, images, created_at`

func (r *custodialNoteRepository) Create(ctx context.Context, note *entity.CustodialNote) (*entity.CustodialNote, error) {
	if err := note.Validate(); err != nil {
		return nil, err
	}

	note.CreatedAt = time.Now().UTC()
	query := r.db.rebind(`INSERT INTO custodial_notes (
		inspector_name, school, date, location, location_description, notes, images, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id`)

	err := r.db.SQL.QueryRowContext(ctx, query,
		note.InspectorName, note.School, note.Date, note.Location,
		note.LocationDescription, note.Notes, marshalList(note.Images), note.CreatedAt,
	).Scan(&note.ID)
	if err != nil {
		r.logger.Error("custodial_notes.create.failed", "error", err)
		return nil, fmt.Errorf("%w: insert custodial note: %v", common.ErrDatabase, err)
	}
	if note.Images == nil {
		note.Images = []string{}
	}
	return note, nil
}

func (r *custodialNoteRepository) List(ctx context.Context) ([]*entity.CustodialNote, error) {
	query := r.db.rebind(`SELECT ` + noteColumns + ` FROM custodial_notes ORDER BY created_at`)
	rows, err := r.db.SQL.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("custodial_notes.list.failed", "error", err)
		return nil, fmt.Errorf("%w: list custodial notes: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := []*entity.CustodialNote{}
	for rows.Next() {
		note, err := scanCustodialNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (r *custodialNoteRepository) Get(ctx context.Context, id int) (*entity.CustodialNote, error) {
	query := r.db.rebind(`SELECT ` + noteColumns + ` FROM custodial_notes WHERE id = $1`)
	note, err := scanCustodialNote(r.db.SQL.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: custodial note %d", common.ErrNotFound, id)
	}
	return note, err
}

func scanCustodialNote(row rowScanner) (*entity.CustodialNote, error) {
	var (
		note      entity.CustodialNote
		inspector sql.NullString
		locDesc   sql.NullString
		images    string
	)

	err := row.Scan(
		&note.ID, &inspector, &note.School, &note.Date, &note.Location,
		&locDesc, &note.Notes, &images, &note.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	note.InspectorName = nullToStrPtr(inspector)
	note.LocationDescription = nullToStrPtr(locDesc)
	note.Images = unmarshalList(images)
	return &note, nil
}
