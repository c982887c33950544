package entity

import "time"

// Branch is a dealership location. Code is the business key referenced by stock
// records and invoices.
type Branch struct {
	Code      string // unique, e.g. "BLR-01"
	Name      string
	Address   string
	City      string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
