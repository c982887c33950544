package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Buyer types for an invoice.
const (
	BuyerBranch   = "BRANCH"   // branch-to-branch transfer sale
	BuyerCustomer = "CUSTOMER" // end-customer retail sale
)

// Invoice is the billing record produced for a sale. Its ledger append happens in the
// same transaction, and LedgerSerial links back to the SALE stock record.
type Invoice struct {
	ID     string
	Number string // prefix + random 4-digit suffix, e.g. "NXV-4821"; unique

	Kind         string // VEHICLE or SPARE_PART
	LocationCode string // selling branch
	ItemName     string

	Quantity int64
	UnitRate decimal.Decimal
	Total    decimal.Decimal // Quantity * UnitRate, exact

	BuyerType       string // BRANCH or CUSTOMER
	BuyerBranchCode string
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string

	// Vehicle spec bag; all optional, empty for spare parts.
	Specs VehicleSpecs

	LedgerSerial int64 // serial of the SALE stock record written with this invoice

	IssueDate time.Time // day granularity
	CreatedAt time.Time
	CreatedBy string
}

// VehicleSpecs holds the per-unit serial numbers printed on vehicle invoices.
type VehicleSpecs struct {
	ChassisNo    string
	MotorNo      string
	ControllerNo string
	ChargerNo    string
	BatteryNo    string
}
