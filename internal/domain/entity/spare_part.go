package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SparePart is a catalog entry for a spare part. PartCode is unique; HSNCode is the
// GST classification printed on invoices.
type SparePart struct {
	ID        string
	PartCode  string // unique, e.g. "SP-CTRL-48V"
	Name      string
	HSNCode   string
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
