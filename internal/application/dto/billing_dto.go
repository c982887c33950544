package dto

import "github.com/shopspring/decimal"

// IssueInvoiceRequest body for POST /api/invoices.
// UnitRate is optional; when omitted the rate is resolved from the latest ledger
// record of the (kind, location, item) pair.
type IssueInvoiceRequest struct {
	Kind         string           `json:"kind"` // VEHICLE | SPARE_PART
	LocationCode string           `json:"location_code"`
	ItemName     string           `json:"item_name"`
	Quantity     int64            `json:"quantity"`
	UnitRate     *decimal.Decimal `json:"unit_rate,omitempty"`

	BuyerType       string `json:"buyer_type"` // BRANCH | CUSTOMER
	BuyerBranchCode string `json:"buyer_branch_code,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`

	Specs *VehicleSpecsDTO `json:"specs,omitempty"`
}

// VehicleSpecsDTO per-unit serial numbers printed on vehicle invoices.
type VehicleSpecsDTO struct {
	ChassisNo    string `json:"chassis_no,omitempty"`
	MotorNo      string `json:"motor_no,omitempty"`
	ControllerNo string `json:"controller_no,omitempty"`
	ChargerNo    string `json:"charger_no,omitempty"`
	BatteryNo    string `json:"battery_no,omitempty"`
}

// InvoiceResponse invoice in responses.
type InvoiceResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`

	Kind         string `json:"kind"`
	LocationCode string `json:"location_code"`
	ItemName     string `json:"item_name"`

	Quantity int64           `json:"quantity"`
	UnitRate decimal.Decimal `json:"unit_rate"`
	Total    decimal.Decimal `json:"total"`
	InWords  string          `json:"in_words"`

	BuyerType       string `json:"buyer_type"`
	BuyerBranchCode string `json:"buyer_branch_code,omitempty"`
	CustomerName    string `json:"customer_name,omitempty"`
	CustomerPhone   string `json:"customer_phone,omitempty"`
	CustomerAddress string `json:"customer_address,omitempty"`

	Specs *VehicleSpecsDTO `json:"specs,omitempty"`

	LedgerSerial int64  `json:"ledger_serial"`
	IssueDate    string `json:"issue_date"` // YYYY-MM-DD
}

// InvoiceListResponse page of invoices.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
