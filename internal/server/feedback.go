package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ca-facilities/custodial-command/internal/entity"
	"github.com/ca-facilities/custodial-command/internal/feedback"
)

// uploadMonthlyFeedback accepts a multipart PDF upload. School, month, and
// year come from form fields when present, otherwise they are derived from
// the uploaded filename.
func (s *Server) uploadMonthlyFeedback(c *gin.Context) {
	file, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"pdf file is required"}})
		return
	}

	meta := feedback.ResolveFilename(file.Filename, nil)
	if v := c.PostForm("school"); v != "" {
		meta.School = v
	}
	if v := c.PostForm("month"); v != "" {
		meta.Month = v
	}
	if v := c.PostForm("year"); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			meta.Year = y
		} else {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"year must be an integer"}})
			return
		}
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.writeError(c, err)
		return
	}
	stored := uuid.New().String() + "-" + filepath.Base(file.Filename)
	dest := filepath.Join(s.uploadDir, stored)
	if err := c.SaveUploadedFile(file, dest); err != nil {
		s.writeError(c, err)
		return
	}

	fb := &entity.MonthlyFeedback{
		School:   meta.School,
		Month:    meta.Month,
		Year:     meta.Year,
		PDFURL:   "/uploads/" + stored,
		FileName: file.Filename,
		FileSize: file.Size,
	}
	if v := c.PostForm("notes"); v != "" {
		fb.Notes = &v
	}
	if v := c.PostForm("uploadedBy"); v != "" {
		fb.UploadedBy = &v
	}

	// Extraction failures do not block the upload; the row is stored with
	// the text left empty.
	if s.extractor != nil {
		if res, err := s.extractor.Extract(c.Request.Context(), dest); err != nil {
			s.logger.Warn("monthly_feedback.extract.failed", "file", file.Filename, "error", err)
		} else {
			fb.ExtractedText = &res.Text
		}
	}

	created, err := s.feedback.Create(c.Request.Context(), fb)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("monthly_feedback.uploaded",
		"id", created.ID, "school", created.School, "month", created.Month, "year", created.Year)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listMonthlyFeedback(c *gin.Context) {
	recs, err := s.feedback.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) getMonthlyFeedback(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	fb, err := s.feedback.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, fb)
}
