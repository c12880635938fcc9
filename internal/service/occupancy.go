// Package service holds the business logic between the HTTP handlers and
// the entity store: occupancy accounting, room assignment, presence
// tracking and the room/payment operations.
package service

import (
	"context"

	"go.uber.org/zap"

	"hostel-service/internal/repository"
	"hostel-service/prometheus"
)

// OccupancyManager keeps Room.Occupied equal to the number of active
// students assigned to each room. It is called explicitly by every code
// path that creates, moves or permanently removes a student; it never
// runs as an ORM hook. Capacity is the caller's problem: the manager
// assumes the target room was already validated.
type OccupancyManager struct {
	log *zap.Logger
}

// NewOccupancyManager returns an occupancy manager.
func NewOccupancyManager(log *zap.Logger) *OccupancyManager {
	return &OccupancyManager{log: log}
}

// StudentAdded records a new student in roomID. The rooms store is the
// one bound to the caller's transaction.
func (m *OccupancyManager) StudentAdded(ctx context.Context, rooms repository.RoomStore, roomID uint) error {
	if err := rooms.AdjustOccupied(ctx, roomID, 1); err != nil {
		return err
	}
	m.log.Info("Room occupancy incremented", zap.Uint("room_id", roomID))
	m.publish(ctx, rooms, roomID)
	return nil
}

// StudentRemoved records the permanent removal of a student from roomID.
// Soft deletes must not call this: a soft-deleted student still holds
// its seat until the delete becomes permanent.
func (m *OccupancyManager) StudentRemoved(ctx context.Context, rooms repository.RoomStore, roomID uint) error {
	if err := rooms.AdjustOccupied(ctx, roomID, -1); err != nil {
		return err
	}
	m.log.Info("Room occupancy decremented", zap.Uint("room_id", roomID))
	m.publish(ctx, rooms, roomID)
	return nil
}

// StudentMoved records a room change: the new room gains a student and
// the previous room loses one. The two counter updates are separate
// statements but both run before the enclosing operation completes.
func (m *OccupancyManager) StudentMoved(ctx context.Context, rooms repository.RoomStore, oldRoomID, newRoomID uint) error {
	if oldRoomID == newRoomID {
		return nil
	}
	if err := rooms.AdjustOccupied(ctx, newRoomID, 1); err != nil {
		return err
	}
	if err := rooms.AdjustOccupied(ctx, oldRoomID, -1); err != nil {
		return err
	}
	m.log.Info("Room occupancy moved",
		zap.Uint("old_room_id", oldRoomID),
		zap.Uint("new_room_id", newRoomID))
	m.publish(ctx, rooms, oldRoomID)
	m.publish(ctx, rooms, newRoomID)
	return nil
}

// publish refreshes the occupancy gauge for a room. Metrics are best
// effort; a read failure here must not fail the operation.
func (m *OccupancyManager) publish(ctx context.Context, rooms repository.RoomStore, roomID uint) {
	room, err := rooms.GetByID(ctx, roomID)
	if err != nil {
		m.log.Warn("Failed to refresh occupancy gauge",
			zap.Uint("room_id", roomID),
			zap.Error(err))
		return
	}
	prometheus.UpdateRoomOccupancy(room.ID, room.Number, room.Occupied)
}
