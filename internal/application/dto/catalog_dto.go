package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateVehicleModelRequest body for POST /api/catalog/vehicles.
type CreateVehicleModelRequest struct {
	Name            string          `json:"name"`
	MotorPower      string          `json:"motor_power,omitempty"`
	BatteryCapacity string          `json:"battery_capacity,omitempty"`
	Range           string          `json:"range,omitempty"`
	Color           string          `json:"color,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

// UpdateVehicleModelRequest body for PUT /api/catalog/vehicles/:id.
type UpdateVehicleModelRequest struct {
	MotorPower      *string          `json:"motor_power,omitempty"`
	BatteryCapacity *string          `json:"battery_capacity,omitempty"`
	Range           *string          `json:"range,omitempty"`
	Color           *string          `json:"color,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
}

// VehicleModelResponse vehicle model in responses.
type VehicleModelResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MotorPower      string          `json:"motor_power,omitempty"`
	BatteryCapacity string          `json:"battery_capacity,omitempty"`
	Range           string          `json:"range,omitempty"`
	Color           string          `json:"color,omitempty"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// CreateSparePartRequest body for POST /api/catalog/parts.
type CreateSparePartRequest struct {
	PartCode string          `json:"part_code"`
	Name     string          `json:"name"`
	HSNCode  string          `json:"hsn_code,omitempty"`
	Price    decimal.Decimal `json:"price"`
}

// UpdateSparePartRequest body for PUT /api/catalog/parts/:id.
type UpdateSparePartRequest struct {
	Name    *string          `json:"name,omitempty"`
	HSNCode *string          `json:"hsn_code,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
}

// SparePartResponse spare part in responses.
type SparePartResponse struct {
	ID        string          `json:"id"`
	PartCode  string          `json:"part_code"`
	Name      string          `json:"name"`
	HSNCode   string          `json:"hsn_code,omitempty"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// VehicleModelListResponse page of vehicle models.
type VehicleModelListResponse struct {
	Items []VehicleModelResponse `json:"items"`
	Page  PageResponse           `json:"page"`
}

// SparePartListResponse page of spare parts.
type SparePartListResponse struct {
	Items []SparePartResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
