package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents a hostel resident. Every student belongs to exactly
// one room. Deletion is soft by default: the row keeps its seat until a
// forced (hard) delete.
type Student struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Name      string         `json:"name" gorm:"type:varchar(255);not null"`
	Email     string         `json:"email" gorm:"type:varchar(255);unique;not null"`
	RoomID    uint           `json:"roomId" gorm:"column:room_id;not null;index"`
	CheckIn   *time.Time     `json:"checkIn" gorm:"column:check_in"`
	CheckOut  *time.Time     `json:"checkOut" gorm:"column:check_out"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// CheckedIn reports whether the student currently has a check-in timestamp.
func (s *Student) CheckedIn() bool {
	return s.CheckIn != nil
}
