package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's balance. One row per user; credited only through approved
// payment requests.
type Wallet struct {
	UserID    string
	Balance   decimal.Decimal
	UpdatedAt time.Time
}
