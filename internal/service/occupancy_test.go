package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel-service/internal/repository"
)

func TestOccupancyManagerStudentAdded(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 0)
	m := NewOccupancyManager(zap.NewNop())

	require.NoError(t, m.StudentAdded(context.Background(), store.Rooms(), roomID))
	assert.Equal(t, 1, store.Room(roomID).Occupied)
}

func TestOccupancyManagerStudentRemoved(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 2)
	m := NewOccupancyManager(zap.NewNop())

	require.NoError(t, m.StudentRemoved(context.Background(), store.Rooms(), roomID))
	assert.Equal(t, 1, store.Room(roomID).Occupied)
}

func TestOccupancyManagerStudentMoved(t *testing.T) {
	store := repository.NewMemStore()
	roomA := store.SeedRoom(101, 2, 2)
	roomB := store.SeedRoom(102, 2, 0)
	m := NewOccupancyManager(zap.NewNop())

	require.NoError(t, m.StudentMoved(context.Background(), store.Rooms(), roomA, roomB))
	assert.Equal(t, 1, store.Room(roomA).Occupied)
	assert.Equal(t, 1, store.Room(roomB).Occupied)
}

func TestOccupancyManagerStudentMovedSameRoom(t *testing.T) {
	store := repository.NewMemStore()
	roomID := store.SeedRoom(101, 2, 1)
	m := NewOccupancyManager(zap.NewNop())

	require.NoError(t, m.StudentMoved(context.Background(), store.Rooms(), roomID, roomID))
	assert.Equal(t, 1, store.Room(roomID).Occupied)
}

func TestOccupancyManagerUnknownRoom(t *testing.T) {
	store := repository.NewMemStore()
	m := NewOccupancyManager(zap.NewNop())

	err := m.StudentAdded(context.Background(), store.Rooms(), 42)
	assert.Error(t, err)
}
