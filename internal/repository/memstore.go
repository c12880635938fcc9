package repository

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
)

// MemStore is an in-memory Store used by the service and handler tests.
// It mirrors the observable behavior of the GORM store: ids are assigned
// on create, student reads exclude soft-deleted rows, AdjustOccupied
// applies a relative change. InTx serializes callers but does not roll
// back, so it only supports the check-before-mutate ordering the
// services use.
type MemStore struct {
	mu sync.Mutex

	rooms    map[uint]model.Room
	students map[uint]model.Student
	payments map[uint]model.Payment

	nextRoomID    uint
	nextStudentID uint
	nextPaymentID uint
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		rooms:    make(map[uint]model.Room),
		students: make(map[uint]model.Student),
		payments: make(map[uint]model.Payment),
	}
}

func (s *MemStore) Rooms() RoomStore       { return &memRooms{s} }
func (s *MemStore) Students() StudentStore { return &memStudents{s} }
func (s *MemStore) Payments() PaymentStore { return &memPayments{s} }

func (s *MemStore) InTx(ctx context.Context, fn func(Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&txMemStore{s})
}

// txMemStore is the transaction-bound view; it skips the mutex the
// enclosing InTx already holds.
type txMemStore struct {
	s *MemStore
}

func (t *txMemStore) Rooms() RoomStore       { return &memRooms{t.s} }
func (t *txMemStore) Students() StudentStore { return &memStudents{t.s} }
func (t *txMemStore) Payments() PaymentStore { return &memPayments{t.s} }

func (t *txMemStore) InTx(ctx context.Context, fn func(Store) error) error {
	return fn(t)
}

// SeedRoom inserts a room directly and returns its id.
func (s *MemStore) SeedRoom(number, capacity, occupied int) uint {
	s.nextRoomID++
	s.rooms[s.nextRoomID] = model.Room{
		ID:       s.nextRoomID,
		Number:   number,
		Capacity: capacity,
		Occupied: occupied,
	}
	return s.nextRoomID
}

// SeedStudent inserts a student directly and returns its id.
func (s *MemStore) SeedStudent(name, email string, roomID uint) uint {
	s.nextStudentID++
	s.students[s.nextStudentID] = model.Student{
		ID:     s.nextStudentID,
		Name:   name,
		Email:  email,
		RoomID: roomID,
	}
	return s.nextStudentID
}

// Room returns the stored copy of a room.
func (s *MemStore) Room(id uint) model.Room {
	return s.rooms[id]
}

// StudentRow returns the stored copy of a student, soft-deleted or not,
// and whether the row exists at all.
func (s *MemStore) StudentRow(id uint) (model.Student, bool) {
	student, ok := s.students[id]
	return student, ok
}

type memRooms struct {
	s *MemStore
}

func (r *memRooms) Create(ctx context.Context, room *model.Room) error {
	r.s.nextRoomID++
	room.ID = r.s.nextRoomID
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *memRooms) GetByID(ctx context.Context, id uint) (*model.Room, error) {
	room, ok := r.s.rooms[id]
	if !ok {
		return nil, &apperr.NotFoundError{Entity: "Room"}
	}
	return &room, nil
}

func (r *memRooms) GetForUpdate(ctx context.Context, id uint) (*model.Room, error) {
	return r.GetByID(ctx, id)
}

func (r *memRooms) List(ctx context.Context) ([]model.Room, error) {
	rooms := make([]model.Room, 0, len(r.s.rooms))
	for _, room := range r.s.rooms {
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (r *memRooms) Save(ctx context.Context, room *model.Room) error {
	if _, ok := r.s.rooms[room.ID]; !ok {
		return &apperr.NotFoundError{Entity: "Room"}
	}
	r.s.rooms[room.ID] = *room
	return nil
}

func (r *memRooms) Delete(ctx context.Context, id uint) error {
	if _, ok := r.s.rooms[id]; !ok {
		return &apperr.NotFoundError{Entity: "Room"}
	}
	delete(r.s.rooms, id)
	return nil
}

func (r *memRooms) AdjustOccupied(ctx context.Context, id uint, delta int) error {
	room, ok := r.s.rooms[id]
	if !ok {
		return &apperr.NotFoundError{Entity: "Room"}
	}
	room.Occupied += delta
	r.s.rooms[id] = room
	return nil
}

func (r *memRooms) NumberExists(ctx context.Context, number int, excludeID uint) (bool, error) {
	for _, room := range r.s.rooms {
		if room.Number == number && room.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memStudents struct {
	s *MemStore
}

func (r *memStudents) Create(ctx context.Context, student *model.Student) error {
	r.s.nextStudentID++
	student.ID = r.s.nextStudentID
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	r.s.students[student.ID] = *student
	return nil
}

func (r *memStudents) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	student, ok := r.s.students[id]
	if !ok || student.DeletedAt.Valid {
		return nil, &apperr.NotFoundError{Entity: "Student"}
	}
	return &student, nil
}

func (r *memStudents) List(ctx context.Context) ([]model.Student, error) {
	students := make([]model.Student, 0, len(r.s.students))
	for _, student := range r.s.students {
		if student.DeletedAt.Valid {
			continue
		}
		students = append(students, student)
	}
	return students, nil
}

func (r *memStudents) Save(ctx context.Context, student *model.Student) error {
	if _, ok := r.s.students[student.ID]; !ok {
		return &apperr.NotFoundError{Entity: "Student"}
	}
	student.UpdatedAt = time.Now()
	r.s.students[student.ID] = *student
	return nil
}

func (r *memStudents) SoftDelete(ctx context.Context, id uint) error {
	student, ok := r.s.students[id]
	if !ok || student.DeletedAt.Valid {
		return &apperr.NotFoundError{Entity: "Student"}
	}
	student.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	r.s.students[id] = student
	return nil
}

func (r *memStudents) HardDelete(ctx context.Context, id uint) error {
	if _, ok := r.s.students[id]; !ok {
		return &apperr.NotFoundError{Entity: "Student"}
	}
	delete(r.s.students, id)
	return nil
}

func (r *memStudents) CountActiveByRoom(ctx context.Context, roomID uint) (int64, error) {
	var count int64
	for _, student := range r.s.students {
		if !student.DeletedAt.Valid && student.RoomID == roomID {
			count++
		}
	}
	return count, nil
}

func (r *memStudents) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	for _, student := range r.s.students {
		if !student.DeletedAt.Valid && student.Email == email && student.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type memPayments struct {
	s *MemStore
}

func (r *memPayments) Create(ctx context.Context, payment *model.Payment) error {
	r.s.nextPaymentID++
	payment.ID = r.s.nextPaymentID
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *memPayments) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	payment, ok := r.s.payments[id]
	if !ok {
		return nil, &apperr.NotFoundError{Entity: "Payment"}
	}
	return &payment, nil
}

func (r *memPayments) List(ctx context.Context) ([]model.Payment, error) {
	payments := make([]model.Payment, 0, len(r.s.payments))
	for _, payment := range r.s.payments {
		payments = append(payments, payment)
	}
	return payments, nil
}

func (r *memPayments) Save(ctx context.Context, payment *model.Payment) error {
	if _, ok := r.s.payments[payment.ID]; !ok {
		return &apperr.NotFoundError{Entity: "Payment"}
	}
	r.s.payments[payment.ID] = *payment
	return nil
}

func (r *memPayments) Delete(ctx context.Context, id uint) error {
	if _, ok := r.s.payments[id]; !ok {
		return &apperr.NotFoundError{Entity: "Payment"}
	}
	delete(r.s.payments, id)
	return nil
}
