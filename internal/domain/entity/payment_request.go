package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment request states.
const (
	PaymentPending  = "PENDING"
	PaymentApproved = "APPROVED"
	PaymentRejected = "REJECTED"
)

// PaymentRequest is a wallet top-up request. Approval credits the wallet in the same
// transaction that flips the status.
type PaymentRequest struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Note      string
	Status    string // PENDING, APPROVED, REJECTED
	DecidedBy string // admin user ID; empty while pending
	DecidedAt *time.Time
	CreatedAt time.Time
}
