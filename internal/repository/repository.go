// Package repository is the entity store: durable CRUD for rooms, students
// and payments. Services consume the Store interface, which keeps them
// testable against an in-memory fake; the production implementation is
// GORM over Postgres.
package repository

import (
	"context"

	"hostel-service/internal/model"
)

// RoomStore persists rooms.
type RoomStore interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id uint) (*model.Room, error)
	// GetForUpdate locks the room row until the enclosing transaction
	// ends. Outside a transaction it behaves like GetByID.
	GetForUpdate(ctx context.Context, id uint) (*model.Room, error)
	List(ctx context.Context) ([]model.Room, error)
	Save(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id uint) error
	// AdjustOccupied applies a relative change to the occupied counter.
	AdjustOccupied(ctx context.Context, id uint, delta int) error
	NumberExists(ctx context.Context, number int, excludeID uint) (bool, error)
}

// StudentStore persists students. Reads exclude soft-deleted rows.
type StudentStore interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id uint) (*model.Student, error)
	List(ctx context.Context) ([]model.Student, error)
	Save(ctx context.Context, student *model.Student) error
	SoftDelete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	CountActiveByRoom(ctx context.Context, roomID uint) (int64, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByID(ctx context.Context, id uint) (*model.Payment, error)
	List(ctx context.Context) ([]model.Payment, error)
	Save(ctx context.Context, payment *model.Payment) error
	Delete(ctx context.Context, id uint) error
}

// Store bundles the entity stores and transaction control.
type Store interface {
	Rooms() RoomStore
	Students() StudentStore
	Payments() PaymentStore
	// InTx runs fn against a transaction-bound store. The transaction
	// commits when fn returns nil and rolls back otherwise.
	InTx(ctx context.Context, fn func(Store) error) error
}
