package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item kinds. Each kind has its own ledger and serial sequence.
const (
	KindVehicle   = "VEHICLE"
	KindSparePart = "SPARE_PART"
)

// Ledger transaction types.
const (
	TxnStockIn = "STOCK_IN" // stock added at a location
	TxnSale    = "SALE"     // units sold against an invoice
	TxnReport  = "REPORT"   // manual stock report (opening and sold supplied by the caller)
)

// ValidKind reports whether s is a known item kind.
func ValidKind(s string) bool {
	return s == KindVehicle || s == KindSparePart
}

// StockRecord is one dated transaction in the stock ledger of a (kind, location, item)
// pair. Records are append-only; the current balance of the pair is the ClosingStock of
// its latest record (record_date desc, serial desc).
type StockRecord struct {
	Serial       int64  // unique within the kind's ledger, assigned as max+1, never reused
	Kind         string // VEHICLE or SPARE_PART
	TxnType      string // STOCK_IN, SALE or REPORT
	LocationCode string // branch code
	ItemName     string // model name or part name

	// Kind-specific identifiers; empty when not applicable.
	ChassisNo string
	PartCode  string
	HSNCode   string

	// UnitPrice carries forward from the most recent record of the pair when a stock-in
	// does not supply one. Nil means no price has ever been recorded for the pair.
	UnitPrice *decimal.Decimal

	OpeningStock int64
	UnitsSold    int64
	AddedQty     int64
	ClosingStock int64 // OpeningStock - UnitsSold + AddedQty

	RecordDate time.Time // day granularity
	CreatedAt  time.Time
	CreatedBy  string // user ID
}
