package extract

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ca-facilities/custodial-command/internal/common"
)

func TestExtractPlainText(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feedback.txt")
	require.NoError(t, os.WriteFile(path, []byte("GWC walkthrough notes"), 0o644))

	e := NewPDFExtractor(Config{}, nil)
	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "GWC walkthrough notes", res.Text)
	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "plain-text", res.Method)
}

func TestExtractMissingFile(t *testing.T) {
	e := NewPDFExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
	assert.Contains(t, err.Error(), "nope.txt")
}

func TestExtractMissingBinary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o644))

	e := NewPDFExtractor(Config{Pdftotext: filepath.Join(dir, "no-such-binary")}, nil)
	_, err := e.Extract(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrExtraction)
}
