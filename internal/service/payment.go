package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/internal/repository"
	"hostel-service/prometheus"
)

// PaymentService keeps the local payment ledger. There is no gateway:
// a created payment is immediately Completed with the current date.
type PaymentService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// UpdatePaymentInput carries a partial payment update.
type UpdatePaymentInput struct {
	StudentID *uint
	Amount    *float64
	Status    *string
}

// NewPaymentService returns a payment service.
func NewPaymentService(store repository.Store, log *zap.Logger) *PaymentService {
	return &PaymentService{store: store, log: log, now: time.Now}
}

// Create records a completed payment for an existing student.
func (s *PaymentService) Create(ctx context.Context, studentID uint, amount float64) (*model.Payment, error) {
	if amount <= 0 {
		return nil, &apperr.ValidationError{Message: "Amount must be greater than zero"}
	}
	if _, err := s.store.Students().GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	payment := &model.Payment{
		StudentID:   studentID,
		Amount:      amount,
		Status:      model.PaymentCompleted,
		PaymentDate: s.now(),
	}
	if err := s.store.Payments().Create(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Payment created",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("student_id", studentID),
		zap.Float64("amount", amount))
	prometheus.RecordPaymentOperation("create")
	return payment, nil
}

// List returns all payments.
func (s *PaymentService) List(ctx context.Context) ([]model.Payment, error) {
	return s.store.Payments().List(ctx)
}

// Update applies a partial update. A status must be one of the known
// values; a student change must reference an existing student.
func (s *PaymentService) Update(ctx context.Context, id uint, input UpdatePaymentInput) (*model.Payment, error) {
	payment, err := s.store.Payments().GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.StudentID != nil {
		if _, err := s.store.Students().GetByID(ctx, *input.StudentID); err != nil {
			return nil, err
		}
		payment.StudentID = *input.StudentID
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, &apperr.ValidationError{Message: "Amount must be greater than zero"}
		}
		payment.Amount = *input.Amount
	}
	if input.Status != nil {
		if !model.ValidPaymentStatus(*input.Status) {
			return nil, &apperr.ValidationError{Message: "Invalid payment status"}
		}
		payment.Status = *input.Status
	}

	if err := s.store.Payments().Save(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("Payment updated", zap.Uint("payment_id", id))
	prometheus.RecordPaymentOperation("update")
	return payment, nil
}

// Delete removes a payment. Payments are independent of student state;
// no cascade runs in either direction.
func (s *PaymentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.store.Payments().GetByID(ctx, id); err != nil {
		return err
	}
	if err := s.store.Payments().Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("Payment deleted", zap.Uint("payment_id", id))
	prometheus.RecordPaymentOperation("delete")
	return nil
}
