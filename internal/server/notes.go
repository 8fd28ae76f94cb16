package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/internal/entity"
)

func (s *Server) createCustodialNote(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"unreadable request body"}})
		return
	}
	if details := ValidatePayload(BuildCustodialNoteJSONSchema(), body); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	var note entity.CustodialNote
	if err := json.Unmarshal(body, &note); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"request body is not valid JSON"}})
		return
	}
	if note.Images == nil {
		note.Images = []string{}
	}

	created, err := s.notes.Create(c.Request.Context(), &note)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("custodial_notes.created", "id", created.ID, "school", created.School, "location", created.Location)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listCustodialNotes(c *gin.Context) {
	notes, err := s.notes.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

func (s *Server) getCustodialNote(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	note, err := s.notes.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}
