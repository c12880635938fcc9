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

type paymentRepository struct {
	db *gorm.DB
}

func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	defer prometheus.TrackDBOperation("create_payment")(time.Now())
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id uint) (*model.Payment, error) {
	defer prometheus.TrackDBOperation("get_payment")(time.Now())
	var payment model.Payment
	if err := r.db.WithContext(ctx).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Entity: "Payment"}
		}
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) List(ctx context.Context) ([]model.Payment, error) {
	defer prometheus.TrackDBOperation("list_payments")(time.Now())
	var payments []model.Payment
	if err := r.db.WithContext(ctx).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepository) Save(ctx context.Context, payment *model.Payment) error {
	defer prometheus.TrackDBOperation("save_payment")(time.Now())
	return r.db.WithContext(ctx).Save(payment).Error
}

func (r *paymentRepository) Delete(ctx context.Context, id uint) error {
	defer prometheus.TrackDBOperation("delete_payment")(time.Now())
	result := r.db.WithContext(ctx).Delete(&model.Payment{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &apperr.NotFoundError{Entity: "Payment"}
	}
	return nil
}
