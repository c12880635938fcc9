package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/prometheus"
)

type roomRepository struct {
	db *gorm.DB
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	defer prometheus.TrackDBOperation("create_room")(time.Now())
	if err := r.db.WithContext(ctx).Create(room).Error; err != nil {
		return err
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id uint) (*model.Room, error) {
	defer prometheus.TrackDBOperation("get_room")(time.Now())
	var room model.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Room"}
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) GetForUpdate(ctx context.Context, id uint) (*model.Room, error) {
	defer prometheus.TrackDBOperation("get_room_for_update")(time.Now())
	var room model.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Room"}
		}
		return nil, err
	}
	return &room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]model.Room, error) {
	defer prometheus.TrackDBOperation("list_rooms")(time.Now())
	var rooms []model.Room
	if err := r.db.WithContext(ctx).Order("number").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepository) Save(ctx context.Context, room *model.Room) error {
	defer prometheus.TrackDBOperation("save_room")(time.Now())
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete_room")(time.Now())
	result := r.db.WithContext(ctx).Delete(&model.Room{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "Room"}
	}
	return nil
}

func (r *roomRepository) AdjustOccupied(ctx context.Context, id uint, delta int) error {
	defer prometheus.TrackDBOperation("adjust_room_occupied")(time.Now())
	result := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("id = ?", id).
		UpdateColumn("occupied", gorm.Expr("occupied + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "Room"}
	}
	return nil
}

func (r *roomRepository) NumberExists(ctx context.Context, number int, excludeID uint) (bool, error) {
	defer prometheus.TrackDBOperation("room_number_exists")(time.Now())
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Room{}).Where("number = ?", number)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
