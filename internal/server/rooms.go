package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ca-facilities/custodial-command/internal/entity"
)

func (s *Server) createRoomInspection(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"unreadable request body"}})
		return
	}
	if details := ValidatePayload(BuildRoomInspectionJSONSchema(), body); details != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": details})
		return
	}

	var room entity.RoomInspection
	if err := json.Unmarshal(body, &room); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": []string{"request body is not valid JSON"}})
		return
	}
	if room.Images == nil {
		room.Images = []string{}
	}

	created, err := s.rooms.Create(c.Request.Context(), &room)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.markRoomVerified(c, created)
	c.JSON(http.StatusCreated, created)
}

// markRoomVerified appends the room type to the parent building inspection's
// verified list. Best effort: the room row is already committed, so a failure
// here is logged and the create still succeeds.
func (s *Server) markRoomVerified(c *gin.Context, room *entity.RoomInspection) {
	ctx := c.Request.Context()
	parent, err := s.inspections.Get(ctx, room.BuildingInspectionID)
	if err != nil {
		s.logger.Warn("room_inspections.verify.parent_missing",
			"building_inspection_id", room.BuildingInspectionID, "error", err)
		return
	}
	verified := append(parent.VerifiedRooms, room.RoomType)
	if _, err := s.inspections.Update(ctx, parent.ID, &entity.InspectionPatch{VerifiedRooms: &verified}); err != nil {
		s.logger.Warn("room_inspections.verify.update_failed",
			"building_inspection_id", parent.ID, "error", err)
	}
}

func (s *Server) listRoomInspections(c *gin.Context) {
	rooms, err := s.rooms.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (s *Server) getRoomInspection(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		s.invalidID(c)
		return
	}
	room, err := s.rooms.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}
