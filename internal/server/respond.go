package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/internal/common"
)

// writeError maps sentinel errors onto HTTP responses. Validation failures
// return field details; everything unexpected collapses to a generic 500 so
// driver internals never leak to clients.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation failed",
			"details": validationDetails(err),
		})
	case errors.Is(err, common.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		s.logger.Error("http.internal_error",
			"error", err,
			"request_id", RequestIDFrom(c),
			"path", c.Request.URL.Path,
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestId": RequestIDFrom(c),
		})
	}
}

func validationDetails(err error) []string {
	return []string{err.Error()}
}

func (s *Server) invalidID(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
}
