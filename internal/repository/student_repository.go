package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/prometheus"
)

type studentRepository struct {
	db *gorm.DB
}

func (r *studentRepository) Create(ctx context.Context, student *model.Student) error {
	defer prometheus.TrackDBOperation("create_student")(time.Now())
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*model.Student, error) {
	defer prometheus.TrackDBOperation("get_student")(time.Now())
	var student model.Student
	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Student"}
		}
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) List(ctx context.Context) ([]model.Student, error) {
	defer prometheus.TrackDBOperation("list_students")(time.Now())
	var students []model.Student
	if err := r.db.WithContext(ctx).Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Save(ctx context.Context, student *model.Student) error {
	defer prometheus.TrackDBOperation("save_student")(time.Now())
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepository) SoftDelete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("soft_delete_student")(time.Now())
	result := r.db.WithContext(ctx).Delete(&model.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "Student"}
	}
	return nil
}

func (r *studentRepository) HardDelete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("hard_delete_student")(time.Now())
	result := r.db.WithContext(ctx).Unscoped().Delete(&model.Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "Student"}
	}
	return nil
}

func (r *studentRepository) CountActiveByRoom(ctx context.Context, roomID uint) (int64, error) {
	defer prometheus.TrackDBOperation("count_students_by_room")(time.Now())
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *studentRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	defer prometheus.TrackDBOperation("student_email_exists")(time.Now())
	var count int64
	query := r.db.WithContext(ctx).Model(&model.Student{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
