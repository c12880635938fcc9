package service

import (
	"context"

	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/internal/repository"
	"hostel-service/prometheus"
)

// RoomService performs room CRUD. Occupied is never written here; it is
// owned by the OccupancyManager.
type RoomService struct {
	store repository.Store
	log   *zap.Logger
}

// UpdateRoomInput carries a partial room update.
type UpdateRoomInput struct {
	Number   *int
	Capacity *int
}

// NewRoomService returns a room service.
func NewRoomService(store repository.Store, log *zap.Logger) *RoomService {
	return &RoomService{store: store, log: log}
}

// Create adds a room with a unique number.
func (s *RoomService) Create(ctx context.Context, number, capacity int) (*model.Room, error) {
	if capacity < 1 {
		return nil, &apperr.ValidationError{Message: "Capacity must be at least 1"}
	}

	exists, err := s.store.Rooms().NumberExists(ctx, number, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperr.ConflictError{Message: "Room with this number already exists"}
	}

	room := &model.Room{Number: number, Capacity: capacity}
	if err := s.store.Rooms().Create(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("Room created",
		zap.Uint("room_id", room.ID),
		zap.Int("number", room.Number),
		zap.Int("capacity", room.Capacity))
	prometheus.RecordRoomOperation("create")
	prometheus.UpdateRoomOccupancy(room.ID, room.Number, room.Occupied)
	return room, nil
}

// List returns all rooms ordered by number.
func (s *RoomService) List(ctx context.Context) ([]model.Room, error) {
	return s.store.Rooms().List(ctx)
}

// Update applies a partial update. Capacity can never drop below the
// current occupancy, otherwise the occupancy invariant would break
// without any student moving.
func (s *RoomService) Update(ctx context.Context, id uint, input UpdateRoomInput) (*model.Room, error) {
	room, err := s.store.Rooms().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Number != nil && *input.Number != room.Number {
		exists, err := s.store.Rooms().NumberExists(ctx, *input.Number, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &apperr.ConflictError{Message: "Room with this number already exists"}
		}
		room.Number = *input.Number
	}
	if input.Capacity != nil {
		if *input.Capacity < 1 {
			return nil, &apperr.ValidationError{Message: "Capacity must be at least 1"}
		}
		if *input.Capacity < room.Occupied {
			return nil, &apperr.ValidationError{Message: "Capacity cannot be less than current occupancy"}
		}
		room.Capacity = *input.Capacity
	}

	if err := s.store.Rooms().Save(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("Room updated", zap.Uint("room_id", id))
	prometheus.RecordRoomOperation("update")
	return room, nil
}

// Delete removes a room. Deletion is blocked while any active student
// still references the room, so student rows can never carry a dangling
// room id.
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.Rooms().GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.store.Students().CountActiveByRoom(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return &apperr.ConflictError{Message: "Room has assigned students"}
	}

	if err := s.store.Rooms().Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Room deleted", zap.Uint("room_id", id))
	prometheus.RecordRoomOperation("delete")
	return nil
}
