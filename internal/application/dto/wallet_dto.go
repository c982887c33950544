package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WalletResponse answer for GET /api/wallet.
type WalletResponse struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreatePaymentRequestRequest body for POST /api/payment-requests.
type CreatePaymentRequestRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// PaymentRequestResponse payment request in responses.
type PaymentRequestResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	Status    string          `json:"status"`
	DecidedBy string          `json:"decided_by,omitempty"`
	DecidedAt *time.Time      `json:"decided_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// PaymentRequestListResponse page of payment requests.
type PaymentRequestListResponse struct {
	Items []PaymentRequestResponse `json:"items"`
	Page  PageResponse             `json:"page"`
}
