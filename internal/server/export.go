package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/internal/export"
	"github.com/ca-facilities/custodial-command/internal/repository"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) exportInspections(c *gin.Context) {
	filter := export.Filter{
		School: c.Query("school"),
		From:   c.Query("from"),
		To:     c.Query("to"),
	}
	data, err := s.exporter.ExportInspectionsXLSX(c.Request.Context(), filter)
	if err != nil {
		s.writeError(c, err)
		return
	}

	name := fmt.Sprintf("inspections-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) health(c *gin.Context) {
	if s.db != nil {
		if err := repository.HealthCheck(c.Request.Context(), s.db, 3*time.Second); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": "database unreachable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
