package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// VehicleModel is a catalog entry for an EV model. Name is unique and is the
// item name used by the vehicle stock ledger.
type VehicleModel struct {
	ID              string
	Name            string
	MotorPower      string // e.g. "250W"
	BatteryCapacity string // e.g. "60V 28Ah"
	Range           string // claimed range per charge
	Color           string
	Price           decimal.Decimal // ex-showroom list price
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
