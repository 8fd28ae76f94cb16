package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// Config controls the external pdftotext invocation.
type Config struct {
	Pdftotext string        // binary name or path; default "pdftotext"
	Timeout   time.Duration // per-document cap; 0 means none
}

// PDFExtractor shells out to poppler's pdftotext for PDF documents and reads
// anything else as plain text. Extraction failures wrap ErrExtraction and
// carry the source filename.
type PDFExtractor struct {
	cfg    Config
	logger *slog.Logger
}

func NewPDFExtractor(cfg Config, logger *slog.Logger) *PDFExtractor {
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFExtractor{cfg: cfg, logger: logger}
}

func (e *PDFExtractor) Extract(ctx context.Context, path string) (TextExtractionResult, error) {
	start := time.Now()

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return e.pdfToText(ctx, path, start)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return TextExtractionResult{}, e.fail(path, err)
	}
	return TextExtractionResult{
		Text:     string(raw),
		Pages:    1,
		Method:   "plain-text",
		Duration: time.Since(start),
	}, nil
}

func (e *PDFExtractor) pdfToText(ctx context.Context, path string, start time.Time) (TextExtractionResult, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	cmd := exec.CommandContext(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.logger.Error("extract.pdftotext.failed", "path", path, "stderr", stderr.String(), "err", err)
		return TextExtractionResult{}, e.fail(path, err)
	}

	text := stdout.String()
	// pdftotext separates pages with a form feed.
	pages := 1 + strings.Count(text, "\f")

	return TextExtractionResult{
		Text:     text,
		Pages:    pages,
		Method:   "pdf-text",
		Duration: time.Since(start),
	}, nil
}

func (e *PDFExtractor) fail(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", common.ErrExtraction, filepath.Base(path), err)
}
