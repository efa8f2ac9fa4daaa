package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment represents a tuition payment made by a student.
type Payment struct {
	ID          int64           `json:"id"`
	StudentID   int64           `json:"student_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentRequest is the payload for recording a payment.
// Amount accepts a JSON number or numeric string; anything non-numeric
// fails binding.
type PaymentRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	PaymentDate string          `json:"payment_date" binding:"required,datetime=2006-01-02"`
}
