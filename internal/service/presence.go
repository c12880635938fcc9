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

// PresenceService records timestamped check-in/check-out transitions.
// Presence is independent of room accounting: these operations never
// touch room_id or occupied.
type PresenceService struct {
	store repository.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewPresenceService returns a presence service.
func NewPresenceService(store repository.Store, log *zap.Logger) *PresenceService {
	return &PresenceService{store: store, log: log, now: time.Now}
}

// CheckIn stamps the student as present. Checking in again overwrites
// the previous timestamp.
func (s *PresenceService) CheckIn(ctx context.Context, studentID uint) (*model.Student, error) {
	student, err := s.store.Students().GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	student.CheckIn = &now
	if err := s.store.Students().Save(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info("Student checked in",
		zap.Uint("student_id", studentID),
		zap.Time("check_in", now))
	prometheus.RecordStudentOperation("checkin")
	return student, nil
}

// CheckOut stamps the student as departed. A student who never checked
// in cannot check out.
func (s *PresenceService) CheckOut(ctx context.Context, studentID uint) (*model.Student, error) {
	student, err := s.store.Students().GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !student.CheckedIn() {
		return nil, &apperr.InvalidStateError{Message: "Student is not checked in"}
	}

	now := s.now()
	student.CheckOut = &now
	if err := s.store.Students().Save(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info("Student checked out",
		zap.Uint("student_id", studentID),
		zap.Time("check_out", now))
	prometheus.RecordStudentOperation("checkout")
	return student, nil
}
