package model

import "time"

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
	PaymentFailed    = "Failed"
)

// Payment is a local ledger record for a student. There is no gateway
// integration; amounts and statuses are set by the API.
type Payment struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	StudentID   uint      `json:"studentId" gorm:"column:student_id;not null;index"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'Pending'"`
	PaymentDate time.Time `json:"paymentDate" gorm:"column:payment_date"`
}

// ValidPaymentStatus reports whether s is one of the known statuses.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}
