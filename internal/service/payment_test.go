package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hostel-service/internal/apperr"
	"hostel-service/internal/model"
	"hostel-service/internal/repository"
)

func seedStudentForPayment(store *repository.MemStore) uint {
	roomID := store.SeedRoom(101, 2, 1)
	return store.SeedStudent("Alice", "alice@example.com", roomID)
}

func TestCreatePaymentForcedCompleted(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())

	paid := time.Date(2025, 4, 13, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return paid }

	payment, err := svc.Create(context.Background(), studentID, 1500.50)
	require.NoError(t, err)
	assert.NotZero(t, payment.ID)
	assert.Equal(t, studentID, payment.StudentID)
	assert.Equal(t, 1500.50, payment.Amount)
	assert.Equal(t, model.PaymentCompleted, payment.Status)
	assert.True(t, payment.PaymentDate.Equal(paid))
}

func TestCreatePaymentUnknownStudent(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewPaymentService(store, zap.NewNop())

	_, err := svc.Create(context.Background(), 42, 100)

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCreatePaymentInvalidAmount(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())

	_, err := svc.Create(context.Background(), studentID, 0)

	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdatePaymentPartial(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())
	ctx := context.Background()

	payment, err := svc.Create(ctx, studentID, 100)
	require.NoError(t, err)

	status := model.PaymentFailed
	updated, err := svc.Update(ctx, payment.ID, UpdatePaymentInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentFailed, updated.Status)
	assert.Equal(t, 100.0, updated.Amount)
	assert.Equal(t, studentID, updated.StudentID)
}

func TestUpdatePaymentInvalidStatus(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())
	ctx := context.Background()

	payment, err := svc.Create(ctx, studentID, 100)
	require.NoError(t, err)

	status := "Refunded"
	_, err = svc.Update(ctx, payment.ID, UpdatePaymentInput{Status: &status})

	var validation *apperr.ValidationError
	assert.ErrorAs(t, err, &validation)
}

func TestUpdatePaymentUnknownStudent(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())
	ctx := context.Background()

	payment, err := svc.Create(ctx, studentID, 100)
	require.NoError(t, err)

	other := uint(42)
	_, err = svc.Update(ctx, payment.ID, UpdatePaymentInput{StudentID: &other})

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestDeletePayment(t *testing.T) {
	store := repository.NewMemStore()
	studentID := seedStudentForPayment(store)
	svc := NewPaymentService(store, zap.NewNop())
	ctx := context.Background()

	payment, err := svc.Create(ctx, studentID, 100)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, payment.ID))

	payments, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, payments)
}

func TestDeletePaymentNotFound(t *testing.T) {
	store := repository.NewMemStore()
	svc := NewPaymentService(store, zap.NewNop())

	err := svc.Delete(context.Background(), 42)

	var notFound *apperr.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
