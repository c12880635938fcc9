package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel-service/internal/repository"
	"hostel-service/internal/service"
	"hostel-service/pkg/config"
	"hostel-service/prometheus"
)

func TestMain(m *testing.M) {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	prometheus.InitMetrics(cfg)
	os.Exit(m.Run())
}

// newTestServer wires the full handler stack over an in-memory store.
func newTestServer(store *repository.MemStore) *echo.Echo {
	log := zap.NewNop()
	occupancy := service.NewOccupancyManager(log)

	e := echo.New()
	e.Validator = NewRequestValidator()

	NewRoomHandler(service.NewRoomService(store, log)).Register(e.Group("/rooms"))
	NewStudentHandler(
		service.NewStudentService(store, occupancy, log),
		service.NewPresenceService(store, log),
	).Register(e.Group("/students"))
	NewPaymentHandler(service.NewPaymentService(store, log)).Register(e.Group("/payments"))

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateRoomEndpoint(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodPost, "/rooms", `{"number":101,"capacity":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, float64(101), body["number"])
	assert.Equal(t, float64(2), body["capacity"])
	assert.Equal(t, float64(0), body["occupied"])
}

func TestCreateRoomMissingFields(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodPost, "/rooms", `{"number":101}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateRoomDuplicateNumberEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	store.SeedRoom(101, 2, 0)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/rooms", `{"number":101,"capacity":2}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestListRoomsEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	store.SeedRoom(101, 2, 0)
	store.SeedRoom(102, 3, 1)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodGet, "/rooms", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var rooms []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rooms))
	assert.Len(t, rooms, 2)
}

func TestDeleteRoomWithStudentsEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodDelete, "/rooms/1", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Room has assigned students", decodeBody(t, rec)["error"])
}

func TestCreateStudentEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 0)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students",
		`{"name":"Alice","email":"alice@example.com","roomId":1}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, float64(roomID), body["roomId"])
	assert.Equal(t, 1, store.Room(roomID).Occupied)
}

func TestCreateStudentFullRoomEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	store.SeedRoom(101, 1, 1)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students",
		`{"name":"Bob","email":"bob@example.com","roomId":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room is full", decodeBody(t, rec)["error"])
}

func TestAssignRoomEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomA := store.SeedRoom(101, 2, 1)
	roomB := store.SeedRoom(102, 2, 0)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomA)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/assign",
		`{"studentId":1,"roomId":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Room assigned successfully", body["message"])

	assert.Equal(t, 0, store.Room(roomA).Occupied)
	assert.Equal(t, 1, store.Room(roomB).Occupied)

	student, ok := store.StudentRow(studentID)
	require.True(t, ok)
	assert.Equal(t, roomB, student.RoomID)
}

func TestAssignRoomFullEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	store.SeedRoom(101, 1, 1)
	holding := store.SeedRoom(999, 10, 1)
	store.SeedStudent("Carol", "carol@example.com", holding)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/assign",
		`{"studentId":1,"roomId":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Room is full", decodeBody(t, rec)["error"])
}

func TestAssignRoomMissingStudentEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	store.SeedRoom(101, 2, 0)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/assign",
		`{"studentId":42,"roomId":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCheckInEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/1/checkin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Check-in successful", body["message"])

	student := body["student"].(map[string]any)
	assert.NotNil(t, student["checkIn"])
}

func TestCheckOutWithoutCheckInEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/1/checkout", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Student is not checked in", decodeBody(t, rec)["error"])
}

func TestCheckOutEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/students/1/checkin", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/students/1/checkout", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Check-out successful", decodeBody(t, rec)["message"])
}

func TestCheckInMissingStudentEndpoint(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodPost, "/students/42/checkin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStudentSoftEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodDelete, "/students/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// Soft delete keeps the seat and the row.
	assert.Equal(t, 1, store.Room(roomID).Occupied)
	row, ok := store.StudentRow(studentID)
	require.True(t, ok)
	assert.True(t, row.DeletedAt.Valid)
}

func TestDeleteStudentForceEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodDelete, "/students/1?force=true", "")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 0, store.Room(roomID).Occupied)
	_, ok := store.StudentRow(studentID)
	assert.False(t, ok)
}

func TestUpdateStudentEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPut, "/students/1", `{"name":"Alice Cooper"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Alice Cooper", body["name"])
	assert.Equal(t, "alice@example.com", body["email"])
}

func TestUpdateStudentNotFoundEndpoint(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodPut, "/students/42", `{"name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreatePaymentEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/payments", `{"studentId":1,"amount":1500.5}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Completed", body["status"])
	assert.Equal(t, 1500.5, body["amount"])
	assert.NotNil(t, body["paymentDate"])
}

func TestCreatePaymentUnknownStudentEndpoint(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodPost, "/payments", `{"studentId":42,"amount":100}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePaymentEndpoint(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	store.SeedStudent("Alice", "alice@example.com", roomID)
	e := newTestServer(store)

	rec := doJSON(e, http.MethodPost, "/payments", `{"studentId":1,"amount":100}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(e, http.MethodPut, "/payments/1", `{"status":"Failed"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "Failed", body["status"])
	assert.Equal(t, float64(100), body["amount"])
}

func TestDeletePaymentNotFoundEndpoint(t *testing.T) {
	e := newTestServer(repository.NewMemStore())

	rec := doJSON(e, http.MethodDelete, "/payments/42", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
