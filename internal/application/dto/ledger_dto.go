package dto

import "github.com/shopspring/decimal"

// StockInRequest body for POST /api/stock/entries.
type StockInRequest struct {
	Kind         string           `json:"kind"` // VEHICLE | SPARE_PART
	LocationCode string           `json:"location_code"`
	ItemName     string           `json:"item_name"`
	AddedQty     int64            `json:"added_qty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"` // omitted: carried forward
	ChassisNo    string           `json:"chassis_no,omitempty"`
	PartCode     string           `json:"part_code,omitempty"`
	HSNCode      string           `json:"hsn_code,omitempty"`
}

// StockReportRequest body for POST /api/stock/reports (manual daily report).
type StockReportRequest struct {
	Kind         string           `json:"kind"`
	LocationCode string           `json:"location_code"`
	ItemName     string           `json:"item_name"`
	OpeningStock int64            `json:"opening_stock"`
	UnitsSold    int64            `json:"units_sold"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	PartCode     string           `json:"part_code,omitempty"`
	HSNCode      string           `json:"hsn_code,omitempty"`
}

// StockRecordResponse one ledger record in responses.
type StockRecordResponse struct {
	Serial       int64            `json:"serial"`
	Kind         string           `json:"kind"`
	TxnType      string           `json:"txn_type"`
	LocationCode string           `json:"location_code"`
	ItemName     string           `json:"item_name"`
	ChassisNo    string           `json:"chassis_no,omitempty"`
	PartCode     string           `json:"part_code,omitempty"`
	HSNCode      string           `json:"hsn_code,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	OpeningStock int64            `json:"opening_stock"`
	UnitsSold    int64            `json:"units_sold"`
	AddedQty     int64            `json:"added_qty"`
	ClosingStock int64            `json:"closing_stock"`
	RecordDate   string           `json:"record_date"` // YYYY-MM-DD
}

// CurrentStockResponse answer for GET /api/stock/current.
type CurrentStockResponse struct {
	Kind         string `json:"kind"`
	LocationCode string `json:"location_code"`
	ItemName     string `json:"item_name"`
	CurrentStock int64  `json:"current_stock"`
}

// LedgerListResponse page of ledger records.
type LedgerListResponse struct {
	Items []StockRecordResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
