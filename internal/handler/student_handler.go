package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hostel-service/internal/service"
	"hostel-service/pkg/logger"
)

// StudentRequest defines the structure for student creation requests
type StudentRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	RoomID uint   `json:"roomId" validate:"required"`
}

// StudentUpdateRequest defines the structure for partial student updates
type StudentUpdateRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	RoomID *uint   `json:"room_id"`
}

// AssignRoomRequest defines the structure for room assignment requests
type AssignRoomRequest struct {
	StudentID uint `json:"studentId" validate:"required"`
	RoomID    uint `json:"roomId" validate:"required"`
}

// StudentHandler exposes the student endpoints
type StudentHandler struct {
	students *service.StudentService
	presence *service.PresenceService
}

// NewStudentHandler returns a student handler
func NewStudentHandler(students *service.StudentService, presence *service.PresenceService) *StudentHandler {
	return &StudentHandler{students: students, presence: presence}
}

// Register mounts the student routes on g
func (h *StudentHandler) Register(g *echo.Group) {
	g.POST("", h.CreateStudent)
	g.GET("", h.ListStudents)
	g.POST("/assign", h.AssignRoom)
	g.POST("/:id/checkin", h.CheckIn)
	g.POST("/:id/checkout", h.CheckOut)
	g.PUT("/:id", h.UpdateStudent)
	g.DELETE("/:id", h.DeleteStudent)
}

// CreateStudent handles registering a student into a room
func (h *StudentHandler) CreateStudent(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new student")

	var req StudentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Student request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, email and roomId are required"})
	}

	student, err := h.students.Create(c.Request().Context(), req.Name, req.Email, req.RoomID)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Student created successfully",
		zap.Uint("student_id", student.ID),
		zap.String("email", student.Email))
	return c.JSON(http.StatusCreated, student)
}

// ListStudents handles retrieving all active students
func (h *StudentHandler) ListStudents(c echo.Context) error {
	log := logger.FromContext(c)

	students, err := h.students.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Students retrieved successfully", zap.Int("count", len(students)))
	return c.JSON(http.StatusOK, students)
}

// AssignRoom handles binding a student to a room
func (h *StudentHandler) AssignRoom(c echo.Context) error {
	log := logger.FromContext(c)

	var req AssignRoomRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Assign request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "studentId and roomId are required"})
	}

	log.Info("Assigning room",
		zap.Uint("student_id", req.StudentID),
		zap.Uint("room_id", req.RoomID))

	student, err := h.students.Assign(c.Request().Context(), req.StudentID, req.RoomID)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Room assigned successfully",
		zap.Uint("student_id", student.ID),
		zap.Uint("room_id", student.RoomID))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Room assigned successfully",
		"student": student,
	})
}

// CheckIn handles marking a student present
func (h *StudentHandler) CheckIn(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Checking in student", zap.Uint("student_id", id))

	student, err := h.presence.CheckIn(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Check-in successful",
		"student": student,
	})
}

// CheckOut handles marking a student departed
func (h *StudentHandler) CheckOut(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Checking out student", zap.Uint("student_id", id))

	student, err := h.presence.CheckOut(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Check-out successful",
		"student": student,
	})
}

// UpdateStudent handles partial updates of an existing student
func (h *StudentHandler) UpdateStudent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Updating student", zap.Uint("student_id", id))

	var req StudentUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Student update failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid email address"})
	}

	student, err := h.students.Update(c.Request().Context(), id, service.UpdateStudentInput{
		Name:   req.Name,
		Email:  req.Email,
		RoomID: req.RoomID,
	})
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Student updated successfully", zap.Uint("student_id", id))
	return c.JSON(http.StatusOK, student)
}

// DeleteStudent handles deleting a student. The default is a soft
// delete; ?force=true removes the row and frees the seat.
func (h *StudentHandler) DeleteStudent(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}

	force := c.QueryParam("force") == "true"
	log.Info("Deleting student", zap.Uint("student_id", id), zap.Bool("force", force))

	if err := h.students.Delete(c.Request().Context(), id, force); err != nil {
		return writeError(c, err)
	}

	log.Info("Student deleted successfully", zap.Uint("student_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Student deleted successfully"})
}
