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

// MonthlyFeedbackRepository is the persistence gateway for uploaded monthly
// feedback documents.
type MonthlyFeedbackRepository interface {
	Create(ctx context.Context, fb *entity.MonthlyFeedback) (*entity.MonthlyFeedback, error)
	List(ctx context.Context) ([]*entity.MonthlyFeedback, error)
	Get(ctx context.Context, id int) (*entity.MonthlyFeedback, error)
}

type monthlyFeedbackRepository struct {
	db     *DB
	logger *slog.Logger
}

func NewMonthlyFeedbackRepository(db *DB, logger *slog.Logger) MonthlyFeedbackRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &monthlyFeedbackRepository{db: db, logger: logger}
}

const feedbackColumns = `id, school, month, year, pdf_url, file_name, extracted_text, notes, uploaded_by, file_size, created_at`

func (r *monthlyFeedbackRepository) Create(ctx context.Context, fb *entity.MonthlyFeedback) (*entity.MonthlyFeedback, error) {
	if err := fb.Validate(); err != nil {
		return nil, err
	}

	fb.CreatedAt = time.Now().UTC()
	query := r.db.rebind(`INSERT INTO monthly_feedback (
		school, month, year, pdf_url, file_name, extracted_text, notes, uploaded_by, file_size, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id`)

	err := r.db.SQL.QueryRowContext(ctx, query,
		fb.School, fb.Month, fb.Year, fb.PDFURL, fb.FileName,
		fb.ExtractedText, fb.Notes, fb.UploadedBy, fb.FileSize, fb.CreatedAt,
	).Scan(&fb.ID)
	if err != nil {
		r.logger.Error("monthly_feedback.create.failed", "error", err)
		return nil, fmt.Errorf("%w: insert monthly feedback: %v", common.ErrDatabase, err)
	}
	return fb, nil
}

func (r *monthlyFeedbackRepository) List(ctx context.Context) ([]*entity.MonthlyFeedback, error) {
	query := r.db.rebind(`SELECT ` + feedbackColumns + ` FROM monthly_feedback ORDER BY created_at`)
	rows, err := r.db.SQL.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("monthly_feedback.list.failed", "error", err)
		return nil, fmt.Errorf("%w: list monthly feedback: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := []*entity.MonthlyFeedback{}
	for rows.Next() {
		fb, err := scanMonthlyFeedback(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, fb)
	}
	return out, rows.Err()
}

func (r *monthlyFeedbackRepository) Get(ctx context.Context, id int) (*entity.MonthlyFeedback, error) {
	query := r.db.rebind(`SELECT ` + feedbackColumns + ` FROM monthly_feedback WHERE id = $1`)
	fb, err := scanMonthlyFeedback(r.db.SQL.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: monthly feedback %d", common.ErrNotFound, id)
	}
	return fb, err
}

func scanMonthlyFeedback(row rowScanner) (*entity.MonthlyFeedback, error) {
	var (
		fb         entity.MonthlyFeedback
		extracted  sql.NullString
		notes      sql.NullString
		uploadedBy sql.NullString
	)

	err := row.Scan(
		&fb.ID, &fb.School, &fb.Month, &fb.Year, &fb.PDFURL, &fb.FileName,
		&extracted, &notes, &uploadedBy, &fb.FileSize, &fb.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	fb.ExtractedText = nullToStrPtr(extracted)
	fb.Notes = nullToStrPtr(notes)
	fb.UploadedBy = nullToStrPtr(uploadedBy)
	return &fb, nil
}
