package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seating-api/internal/dto"
	"github.com/noah-isme/exam-seating-api/internal/models"
	appErrors "github.com/noah-isme/exam-seating-api/pkg/errors"
	"github.com/noah-isme/exam-seating-api/pkg/response"
)

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Replace(ctx context.Context, req dto.ReplaceRoomsRequest) ([]models.Room, error)
}

// RoomHandler exposes the examination hall inventory.
type RoomHandler struct {
	service roomService
}

// NewRoomHandler builds a new handler.
func NewRoomHandler(service roomService) *RoomHandler {
	return &RoomHandler{service: service}
}

// List godoc
// @Summary List rooms in pool order
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"total": len(rooms), "capacity": totalCapacity(rooms)})
}

// Replace godoc
// @Summary Replace the room inventory
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.ReplaceRoomsRequest true "Ordered rooms"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [put]
func (h *RoomHandler) Replace(c *gin.Context) {
	var req dto.ReplaceRoomsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room payload"))
		return
	}
	rooms, err := h.service.Replace(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, map[string]interface{}{"total": len(rooms), "capacity": totalCapacity(rooms)})
}

func totalCapacity(rooms []models.Room) int {
	total := 0
	for _, room := range rooms {
		total += room.Capacity()
	}
	return total
}
