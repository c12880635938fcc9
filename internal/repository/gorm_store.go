package repository

import (
	"context"

	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// NewStore returns a Store backed by the given GORM handle.
func NewStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) Rooms() RoomStore {
	return &roomRepository{db: s.db}
}

func (s *gormStore) Students() StudentStore {
	return &studentRepository{db: s.db}
}

func (s *gormStore) Payments() PaymentStore {
	return &paymentRepository{db: s.db}
}

func (s *gormStore) InTx(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}
