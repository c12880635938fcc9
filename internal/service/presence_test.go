package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/internal/repository"
)

func TestCheckInSetsTimestamp(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	svc := NewPresenceService(store, zap.NewNop())

	student, err := svc.CheckIn(context.Background(), studentID)
	require.NoError(t, err)
	require.NotNil(t, student.CheckIn)
	assert.Nil(t, student.CheckOut)

	// Presence never touches room accounting.
	assert.Equal(t, roomID, student.RoomID)
	assert.Equal(t, 1, store.Room(roomID).Occupied)
}

func TestCheckInAgainOverwrites(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	svc := NewPresenceService(store, zap.NewNop())

	first := time.Date(2025, 4, 13, 8, 0, 0, 0, time.UTC)
	second := first.Add(2 * time.Hour)

	svc.now = func() time.Time { return first }
	_, err := svc.CheckIn(context.Background(), studentID)
	require.NoError(t, err)

	svc.now = func() time.Time { return second }
	student, err := svc.CheckIn(context.Background(), studentID)
	require.NoError(t, err)
	assert.True(t, student.CheckIn.Equal(second))
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	svc := NewPresenceService(store, zap.NewNop())

	_, err := svc.CheckOut(context.Background(), studentID)

	var invalid *apperr.InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "Student is not checked in", err.Error())
}

func TestCheckInThenCheckOut(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	studentID := store.SeedStudent("Alice", "alice@example.com", roomID)
	svc := NewPresenceService(store, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, studentID)
	require.NoError(t, err)

	student, err := svc.CheckOut(ctx, studentID)
	require.NoError(t, err)
	require.NotNil(t, student.CheckIn)
	require.NotNil(t, student.CheckOut)
	assert.False(t, student.CheckOut.Before(*student.CheckIn))
}

func TestPresenceMissingStudent(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewPresenceService(store, zap.NewNop())
	ctx := context.Background()

	var notFound *apperr.NotFoundError

	_, err := svc.CheckIn(ctx, 42)
	assert.ErrorAs(t, err, &notFound)

	_, err = svc.CheckOut(ctx, 42)
	assert.ErrorAs(t, err, &notFound)
}
