package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hostel-service/internal/service"
	"hostel-service/pkg/logger"
)

// RoomRequest defines the structure for room creation requests
type RoomRequest struct {
	Number   int `json:"number" validate:"required"`
	Capacity int `json:"capacity" validate:"required,gte=1"`
}

// RoomUpdateRequest defines the structure for partial room updates
type RoomUpdateRequest struct {
	Number   *int `json:"number"`
	Capacity *int `json:"capacity"`
}

// RoomHandler exposes the room endpoints
type RoomHandler struct {
	rooms *service.RoomService
}

// NewRoomHandler returns a room handler
func NewRoomHandler(rooms *service.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

// Register mounts the room routes on g
func (h *RoomHandler) Register(g *echo.Group) {
	g.POST("", h.CreateRoom)
	g.GET("", h.ListRooms)
	g.PUT("/:id", h.UpdateRoom)
	g.DELETE("/:id", h.DeleteRoom)
}

// CreateRoom handles creating a new room
func (h *RoomHandler) CreateRoom(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new room")

	var req RoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Room request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Number and capacity are required"})
	}

	room, err := h.rooms.Create(c.Request().Context(), req.Number, req.Capacity)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Room created successfully",
		zap.Uint("room_id", room.ID),
		zap.Int("number", room.Number))
	return c.JSON(http.StatusCreated, room)
}

// ListRooms handles retrieving all rooms
func (h *RoomHandler) ListRooms(c echo.Context) error {
	log := logger.FromContext(c)

	rooms, err := h.rooms.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Rooms retrieved successfully", zap.Int("count", len(rooms)))
	return c.JSON(http.StatusOK, rooms)
}

// UpdateRoom handles partial updates of an existing room
func (h *RoomHandler) UpdateRoom(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Updating room", zap.Uint("room_id", id))

	var req RoomUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	room, err := h.rooms.Update(c.Request().Context(), id, service.UpdateRoomInput{
		Number:   req.Number,
		Capacity: req.Capacity,
	})
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Room updated successfully", zap.Uint("room_id", id))
	return c.JSON(http.StatusOK, room)
}

// DeleteRoom handles deleting a room without assigned students
func (h *RoomHandler) DeleteRoom(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Deleting room", zap.Uint("room_id", id))

	if err := h.rooms.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	log.Info("Room deleted successfully", zap.Uint("room_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Room deleted successfully"})
}

// parseID reads the :id path parameter.
func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
