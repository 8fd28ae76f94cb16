package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/ca-facilities/custodial-command/internal/entity"
	"github.com/ca-facilities/custodial-command/internal/extract"
	"github.com/ca-facilities/custodial-command/internal/feedback"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

// AutomatedUploader marks rows created by the importer rather than an
// interactive inspector.
const AutomatedUploader = "Automated Import"

// previewCount is how many parsed locations get logged before committing.
const previewCount = 5

// FileResult is the outcome of importing one document.
type FileResult struct {
	File              string `json:"file"`
	Success           bool   `json:"success"`
	MonthlyFeedbackID int    `json:"monthlyFeedbackId,omitempty"`
	NotesCount        int    `json:"notesCount,omitempty"`
	NoteIDs           []int  `json:"noteIds,omitempty"`
	Error             string `json:"error,omitempty"`
}

// Summary aggregates a batch import.
type Summary struct {
	Results    []FileResult `json:"results"`
	Succeeded  int          `json:"succeeded"`
	Failed     int          `json:"failed"`
	TotalNotes int          `json:"totalNotes"`
}

// Importer sequences documents through extraction, parsing, synthesis, and
// persistence. Files are processed strictly sequentially; the inter-file and
// pre-commit delays are throttles inherited from the interactive tooling,
// injectable so tests run with zero delay.
type Importer struct {
	Extractor extract.TextExtractor
	Feedback  repository.MonthlyFeedbackRepository
	Notes     repository.CustodialNoteRepository
	Logger    *slog.Logger

	// Sleep is called for every delay and must honor ctx cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
	// Now supplies the clock for defaulted dates and filename resolution.
	Now func() time.Time

	// Meta, when set, overrides filename-derived metadata for every file in
	// a batch.
	Meta *feedback.Metadata

	InterFileDelay time.Duration
	PreviewDelay   time.Duration
}

func New(extractor extract.TextExtractor, fbRepo repository.MonthlyFeedbackRepository, noteRepo repository.CustodialNoteRepository, logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{
		Extractor:      extractor,
		Feedback:       fbRepo,
		Notes:          noteRepo,
		Logger:         logger,
		Sleep:          SleepContext,
		Now:            time.Now,
		InterFileDelay: 3 * time.Second,
		PreviewDelay:   5 * time.Second,
	}
}

// SleepContext waits for d or until ctx is cancelled.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ImportOne runs the full pipeline for a single document: resolve metadata
// (from the filename when meta is nil), persist the document row, parse the
// text, and create one custodial note per parsed location. Note inserts are
// best-effort: a failed insert is logged and skipped while earlier inserts
// stay committed.
func (im *Importer) ImportOne(ctx context.Context, path string, meta *feedback.Metadata) (FileResult, error) {
	base := filepath.Base(path)
	res := FileResult{File: base}

	if meta == nil {
		m := feedback.ResolveFilename(base, im.Now)
		meta = &m
		im.Logger.Info("importer.metadata.resolved", "file", base, "school", m.School, "month", m.Month, "year", m.Year)
	}

	extracted, err := im.Extractor.Extract(ctx, path)
	if err != nil {
		im.Logger.Error("importer.extract.failed", "file", base, "err", err)
		res.Error = err.Error()
		return res, err
	}

	rec := feedback.Parse(extracted.Text)
	im.Logger.Info("importer.parsed",
		"file", base,
		"school", strOrEmpty(rec.School),
		"date", strOrEmpty(rec.Date),
		"scores", len(rec.Scores),
		"glows", len(rec.Glows),
		"grows", len(rec.Grows),
		"locations", len(rec.Locations),
	)

	uploadedBy := AutomatedUploader
	if rec.Inspector != nil {
		uploadedBy = *rec.Inspector
	}
	importNote := fmt.Sprintf("Imported from %s", base)

	var fileSize int64
	if st, err := os.Stat(path); err == nil {
		fileSize = st.Size()
	}

	fb := &entity.MonthlyFeedback{
		School:        meta.School,
		Month:         meta.Month,
		Year:          meta.Year,
		PDFURL:        path,
		FileName:      base,
		ExtractedText: &extracted.Text,
		Notes:         &importNote,
		UploadedBy:    &uploadedBy,
		FileSize:      fileSize,
	}
	if created, err := im.Feedback.Create(ctx, fb); err != nil {
		// The document row is not a precondition for the notes; keep going.
		im.Logger.Warn("importer.feedback.insert_failed", "file", base, "err", err)
	} else {
		res.MonthlyFeedbackID = created.ID
	}

	im.preview(base, rec)
	if im.PreviewDelay > 0 {
		im.Logger.Info("importer.preview.waiting", "file", base, "delay", im.PreviewDelay)
		if err := im.Sleep(ctx, im.PreviewDelay); err != nil {
			res.Error = err.Error()
			return res, err
		}
	}

	noteIDs := []int{}
	for _, loc := range rec.Locations {
		note := feedback.BuildCustodialNote(rec, loc, im.Now)
		created, err := im.Notes.Create(ctx, &note)
		if err != nil {
			im.Logger.Error("importer.note.insert_failed", "file", base, "location", loc.Category, "err", err)
			continue
		}
		noteIDs = append(noteIDs, created.ID)
	}

	res.Success = true
	res.NotesCount = len(noteIDs)
	res.NoteIDs = noteIDs
	im.Logger.Info("importer.file.done", "file", base, "feedback_id", res.MonthlyFeedbackID, "notes", res.NotesCount)
	return res, nil
}

// ImportMany processes files strictly sequentially with the configured
// inter-file delay. A failure on one file is recorded and does not abort the
// batch; the error return is non-nil only when the context is cancelled or
// every file fails.
func (im *Importer) ImportMany(ctx context.Context, paths []string) (Summary, error) {
	summary := Summary{Results: make([]FileResult, 0, len(paths))}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		im.Logger.Info("importer.file.start", "file", filepath.Base(path), "index", i+1, "total", len(paths))
		res, err := im.ImportOne(ctx, path, im.Meta)
		summary.Results = append(summary.Results, res)
		if res.Success {
			summary.Succeeded++
			summary.TotalNotes += res.NotesCount
		} else {
			summary.Failed++
			if ctx.Err() != nil {
				return summary, err
			}
		}

		if i < len(paths)-1 && im.InterFileDelay > 0 {
			im.Logger.Info("importer.batch.waiting", "delay", im.InterFileDelay)
			if err := im.Sleep(ctx, im.InterFileDelay); err != nil {
				return summary, err
			}
		}
	}

	if len(paths) > 0 && summary.Failed == len(paths) {
		return summary, fmt.Errorf("all %d imports failed", len(paths))
	}
	return summary, nil
}

func (im *Importer) preview(file string, rec feedback.Record) {
	n := len(rec.Locations)
	if n == 0 {
		return
	}
	shown := n
	if shown > previewCount {
		shown = previewCount
	}
	for _, loc := range rec.Locations[:shown] {
		im.Logger.Info("importer.preview.location",
			"file", file, "category", loc.Category, "room", strOrEmpty(loc.Room), "notes", truncate(loc.Notes, 60))
	}
	if n > shown {
		im.Logger.Info("importer.preview.more", "file", file, "remaining", n-shown)
	}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// truncate shortens s to at most n runes for log lines.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
