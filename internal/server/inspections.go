package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/constants"
	"github.com/ca-facilities/custodial-command/internal/entity"
)

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (s *Server) createInspection(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"unreadable request body"}})
		return
	}
	if details := ValidatePayload(BuildInspectionJSONSchema(), body); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	var in entity.Inspection
	if err := json.Unmarshal(body, &in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"request body is not valid JSON"}})
		return
	}
	if in.InspectionType == "" {
		in.InspectionType = string(constants.WholeBuilding)
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	if in.VerifiedRooms == nil {
		in.VerifiedRooms = []string{}
	}

	created, err := s.inspections.Create(c.Request.Context(), &in)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("inspections.created", "id", created.ID, "school", created.School, "type", created.InspectionType)
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listInspections(c *gin.Context) {
	recs, err := s.inspections.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Server) getInspection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	in, err := s.inspections.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, in)
}

// updateInspection serves both PATCH and PUT; either way the supplied fields
// are merged onto the stored record.
func (s *Server) updateInspection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"unreadable request body"}})
		return
	}
	if details := ValidatePayload(BuildInspectionPatchJSONSchema(), body); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	var patch entity.InspectionPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"request body is not valid JSON"}})
		return
	}

	updated, err := s.inspections.Update(c.Request.Context(), id, &patch)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteInspection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	if err := s.inspections.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("inspections.deleted", "id", id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listInspectionRooms(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	// The parent must exist even though rooms carry no enforced FK.
	if _, err := s.inspections.Get(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	rooms, err := s.rooms.ListByBuilding(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// finalizeInspection marks a whole-building inspection complete.
func (s *Server) finalizeInspection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	done := true
	updated, err := s.inspections.Update(c.Request.Context(), id, &entity.InspectionPatch{IsCompleted: &done})
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.logger.Info("inspections.finalized", "id", id)
	c.JSON(http.StatusOK, updated)
}
