package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-facilities/custodial-command/internal/common"
	"github.com/ca-facilities/custodial-command/internal/entity"
	"github.com/ca-facilities/custodial-command/internal/extract"
	"github.com/ca-facilities/custodial-command/internal/feedback"
)

const importFixture = `GWC walkthrough on Sat, Dec 6, 2025.
Marcus Webb <mwebb@facilities.example>

Trash - 4

CAFETERIA
- Spill cleaned
- Corner buildup

HALLWAYS
- Scuff marks

Thanks,
`

// fakeExtractor returns canned text per path base name and fails on paths
// listed in failures.
type fakeExtractor struct {
	text     string
	failures map[string]bool
	calls    []string
}

func (f *fakeExtractor) Extract(_ context.Context, path string) (extract.TextExtractionResult, error) {
	f.calls = append(f.calls, path)
	if f.failures[path] {
		return extract.TextExtractionResult{}, fmt.Errorf("%w: %s: boom", common.ErrExtraction, path)
	}
	return extract.TextExtractionResult{Text: f.text, Pages: 1, Method: "plain-text"}, nil
}

type fakeFeedbackRepo struct {
	rows   []*entity.MonthlyFeedback
	nextID int
	fail   bool
}

func (f *fakeFeedbackRepo) Create(_ context.Context, fb *entity.MonthlyFeedback) (*entity.MonthlyFeedback, error) {
	if f.fail {
		return nil, common.ErrDatabase
	}
	f.nextID++
	fb.ID = f.nextID
	f.rows = append(f.rows, fb)
	return fb, nil
}

func (f *fakeFeedbackRepo) List(context.Context) ([]*entity.MonthlyFeedback, error) {
	return f.rows, nil
}

func (f *fakeFeedbackRepo) Get(_ context.Context, id int) (*entity.MonthlyFeedback, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakeNoteRepo struct {
	rows    []*entity.CustodialNote
	nextID  int
	failAll bool
}

func (f *fakeNoteRepo) Create(_ context.Context, n *entity.CustodialNote) (*entity.CustodialNote, error) {
	if f.failAll {
		return nil, common.ErrDatabase
	}
	f.nextID++
	n.ID = f.nextID
	f.rows = append(f.rows, n)
	return n, nil
}

func (f *fakeNoteRepo) List(context.Context) ([]*entity.CustodialNote, error) {
	return f.rows, nil
}

func (f *fakeNoteRepo) Get(_ context.Context, id int) (*entity.CustodialNote, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, common.ErrNotFound
}

func newTestImporter(ex *fakeExtractor, fb *fakeFeedbackRepo, notes *fakeNoteRepo) *Importer {
	im := New(ex, fb, notes, nil)
	im.InterFileDelay = 0
	im.PreviewDelay = 0
	im.Now = func() time.Time { return time.Date(2025, time.December, 6, 12, 0, 0, 0, time.UTC) }
	return im
}

func TestImportOne(t *testing.T) {
	ex := &fakeExtractor{text: importFixture}
	fb := &fakeFeedbackRepo{}
	notes := &fakeNoteRepo{}
	im := newTestImporter(ex, fb, notes)

	res, err := im.ImportOne(context.Background(), "GWC Dec 2025.pdf", nil)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 1, res.MonthlyFeedbackID)
	assert.Equal(t, 3, res.NotesCount)
	assert.Len(t, res.NoteIDs, 3)

	require.Len(t, fb.rows, 1)
	assert.Equal(t, "GWC", fb.rows[0].School)
	assert.Equal(t, "December", fb.rows[0].Month)
	assert.Equal(t, 2025, fb.rows[0].Year)
	require.NotNil(t, fb.rows[0].UploadedBy)
	assert.Equal(t, "Marcus Webb", *fb.rows[0].UploadedBy)

	require.Len(t, notes.rows, 3)
	assert.Equal(t, "cafeteria", notes.rows[0].Location)
	assert.Equal(t, "hallways", notes.rows[2].Location)
	assert.Contains(t, notes.rows[0].Notes, "- Trash: 4")
}

func TestImportOneExplicitMetadata(t *testing.T) {
	ex := &fakeExtractor{text: importFixture}
	fb := &fakeFeedbackRepo{}
	im := newTestImporter(ex, fb, &fakeNoteRepo{})

	meta := &feedback.Metadata{School: "ASA", Month: "March", Year: 2024}
	_, err := im.ImportOne(context.Background(), "whatever.pdf", meta)
	require.NoError(t, err)

	require.Len(t, fb.rows, 1)
	assert.Equal(t, "ASA", fb.rows[0].School)
	assert.Equal(t, "March", fb.rows[0].Month)
	assert.Equal(t, 2024, fb.rows[0].Year)
}

// The document row insert is best-effort: when it fails the location notes
// are still created.
func TestImportOneFeedbackInsertFailureIsNonFatal(t *testing.T) {
	ex := &fakeExtractor{text: importFixture}
	notes := &fakeNoteRepo{}
	im := newTestImporter(ex, &fakeFeedbackRepo{fail: true}, notes)

	res, err := im.ImportOne(context.Background(), "GWC Dec 2025.pdf", nil)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Zero(t, res.MonthlyFeedbackID)
	assert.Len(t, notes.rows, 3)
}

func TestImportManyIsolatesFailures(t *testing.T) {
	ex := &fakeExtractor{
		text:     importFixture,
		failures: map[string]bool{"b.pdf": true},
	}
	fb := &fakeFeedbackRepo{}
	notes := &fakeNoteRepo{}
	im := newTestImporter(ex, fb, notes)

	summary, err := im.ImportMany(context.Background(), []string{"a.pdf", "b.pdf", "c.pdf"})
	require.NoError(t, err)

	// The failing file does not stop the batch; the third file is attempted.
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf"}, ex.calls)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 6, summary.TotalNotes)

	require.Len(t, summary.Results, 3)
	assert.True(t, summary.Results[0].Success)
	assert.False(t, summary.Results[1].Success)
	assert.Contains(t, summary.Results[1].Error, "text extraction failed")
	assert.True(t, summary.Results[2].Success)
}

func TestImportManyAllFailed(t *testing.T) {
	ex := &fakeExtractor{
		text:     importFixture,
		failures: map[string]bool{"a.pdf": true, "b.pdf": true},
	}
	im := newTestImporter(ex, &fakeFeedbackRepo{}, &fakeNoteRepo{})

	summary, err := im.ImportMany(context.Background(), []string{"a.pdf", "b.pdf"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 imports failed")
	assert.Equal(t, 2, summary.Failed)
}

func TestImportManyStopsOnCancellation(t *testing.T) {
	ex := &fakeExtractor{text: importFixture}
	im := newTestImporter(ex, &fakeFeedbackRepo{}, &fakeNoteRepo{})
	im.InterFileDelay = time.Minute

	ctx, cancel := context.WithCancel(context.Background())
	im.Sleep = func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	}

	summary, err := im.ImportMany(ctx, []string{"a.pdf", "b.pdf", "c.pdf"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	// Only the first file ran; the cancellation hit during the inter-file wait.
	assert.Equal(t, []string{"a.pdf"}, ex.calls)
	assert.Equal(t, 1, summary.Succeeded)
}

func TestSleepContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SleepContext(ctx, time.Hour)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSleepContextZeroDelay(t *testing.T) {
	assert.NoError(t, SleepContext(context.Background(), 0))
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 60))
	assert.Equal(t, "abc...", truncate("abcdef", 3))

	// cuts fall on rune boundaries, never mid-encoding
	got := truncate("límpieza de baños en el pasillo", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "límpieza d...", got)
}
