package service

import (
	"context"

	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/internal/repository"
	"hostel-service/prometheus"
)

// StudentService performs student lifecycle operations. Every path that
// touches a student's room runs inside a single transaction with the
// target room row locked, so the capacity check and the occupancy update
// cannot interleave with a concurrent assignment to the same room.
type StudentService struct {
	store     repository.Store
	occupancy *OccupancyManager
	log       *zap.Logger
}

// UpdateStudentInput carries a partial student update. Nil fields keep
// their prior values.
type UpdateStudentInput struct {
	Name   *string
	Email  *string
	RoomID *uint
}

// NewStudentService returns a student service.
func NewStudentService(store repository.Store, occupancy *OccupancyManager, log *zap.Logger) *StudentService {
	return &StudentService{store: store, occupancy: occupancy, log: log}
}

// Create registers a new student in the given room. The room must have
// free capacity before the student row is inserted, so a capacity
// failure never needs a rollback of student state.
func (s *StudentService) Create(ctx context.Context, name, email string, roomID uint) (*model.Student, error) {
	exists, err := s.store.Students().EmailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &apperr.ConflictError{Message: "Student with this email already exists"}
	}

	student := &model.Student{Name: name, Email: email, RoomID: roomID}
	err = s.store.InTx(ctx, func(tx repository.Store) error {
		room, err := tx.Rooms().GetForUpdate(ctx, roomID)
		if err != nil {
			return err
		}
		if !room.HasVacancy() {
			prometheus.RecordCapacityRejection()
			return &apperr.CapacityError{RoomID: roomID}
		}
		if err := tx.Students().Create(ctx, student); err != nil {
			return err
		}
		return s.occupancy.StudentAdded(ctx, tx.Rooms(), roomID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Student created",
		zap.Uint("student_id", student.ID),
		zap.String("email", student.Email),
		zap.Uint("room_id", roomID))
	prometheus.RecordStudentOperation("create")
	return student, nil
}

// Assign binds a student to a room, subject to the room's capacity. A
// student always has a room, so assignment to a different room also
// releases the previous seat.
func (s *StudentService) Assign(ctx context.Context, studentID, roomID uint) (*model.Student, error) {
	var student *model.Student
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		student, err = tx.Students().GetByID(ctx, studentID)
		if err != nil {
			return err
		}
		return s.moveLocked(ctx, tx, student, roomID)
	})
	if err != nil {
		return nil, err
	}

	prometheus.RecordStudentOperation("assign")
	return student, nil
}

// moveLocked moves student into roomID inside the caller's transaction.
// The target room row is locked before the capacity check; on a capacity
// failure nothing has been mutated.
func (s *StudentService) moveLocked(ctx context.Context, tx repository.Store, student *model.Student, roomID uint) error {
	room, err := tx.Rooms().GetForUpdate(ctx, roomID)
	if err != nil {
		return err
	}

	oldRoomID := student.RoomID
	if oldRoomID == roomID {
		return nil
	}

	if !room.HasVacancy() {
		prometheus.RecordCapacityRejection()
		return &apperr.CapacityError{RoomID: roomID}
	}

	student.RoomID = roomID
	if err := tx.Students().Save(ctx, student); err != nil {
		return err
	}
	if err := s.occupancy.StudentMoved(ctx, tx.Rooms(), oldRoomID, roomID); err != nil {
		return err
	}

	s.log.Info("Student moved",
		zap.Uint("student_id", student.ID),
		zap.Uint("old_room_id", oldRoomID),
		zap.Uint("new_room_id", roomID))
	return nil
}

// Update applies a partial update. A room change goes through the same
// capacity-checked path as Assign; name and email changes never touch
// occupancy.
func (s *StudentService) Update(ctx context.Context, id uint, input UpdateStudentInput) (*model.Student, error) {
	if input.Email != nil {
		exists, err := s.store.Students().EmailExists(ctx, *input.Email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, &apperr.ConflictError{Message: "Student with this email already exists"}
		}
	}

	var student *model.Student
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		var err error
		student, err = tx.Students().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if input.RoomID != nil {
			if err := s.moveLocked(ctx, tx, student, *input.RoomID); err != nil {
				return err
			}
		}
		if input.Name != nil {
			student.Name = *input.Name
		}
		if input.Email != nil {
			student.Email = *input.Email
		}
		return tx.Students().Save(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Student updated", zap.Uint("student_id", id))
	prometheus.RecordStudentOperation("update")
	return student, nil
}

// Delete removes a student. The default is a soft delete: the row keeps
// its deleted_at marker and the seat stays reserved, so undoing the
// delete cannot double-book the room. Only a forced delete removes the
// row and releases the seat.
func (s *StudentService) Delete(ctx context.Context, id uint, force bool) error {
	err := s.store.InTx(ctx, func(tx repository.Store) error {
		student, err := tx.Students().GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !force {
			return tx.Students().SoftDelete(ctx, id)
		}

		if err := tx.Students().HardDelete(ctx, id); err != nil {
			return err
		}
		return s.occupancy.StudentRemoved(ctx, tx.Rooms(), student.RoomID)
	})
	if err != nil {
		return err
	}

	s.log.Info("Student deleted", zap.Uint("student_id", id), zap.Bool("force", force))
	prometheus.RecordStudentOperation("delete")
	return nil
}

// Get returns an active student by id.
func (s *StudentService) Get(ctx context.Context, id uint) (*model.Student, error) {
	return s.store.Students().GetByID(ctx, id)
}

// List returns all active students.
func (s *StudentService) List(ctx context.Context) ([]model.Student, error) {
	return s.store.Students().List(ctx)
}
