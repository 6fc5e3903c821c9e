package domain

import (
	"time"

	"github.com/google/uuid"
)

type Quotation struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	CustomerID    *uuid.UUID `json:"customer_id,omitempty" db:"customer_id"`
	FullName      string     `json:"full_name" db:"full_name"`
	Email         string     `json:"email" db:"email"`
	Phone         *string    `json:"phone,omitempty" db:"phone"`
	CargoType     string     `json:"cargo_type" db:"cargo_type"`
	Origin        string     `json:"origin" db:"origin"`
	Destination   string     `json:"destination" db:"destination"`
	WeightKg      float64    `json:"weight_kg" db:"weight_kg"`
	VolumeCbm     *float64   `json:"volume_cbm,omitempty" db:"volume_cbm"`
	TransportMode string     `json:"transport_mode" db:"transport_mode"`
	Status        string     `json:"status" db:"status"`
	QuotedPrice   *float64   `json:"quoted_price,omitempty" db:"quoted_price"`
	Currency      *string    `json:"currency,omitempty" db:"currency"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	QuotedBy      *uuid.UUID `json:"quoted_by,omitempty" db:"quoted_by"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateQuotationInput struct {
	FullName      string   `json:"full_name" validate:"required,min=2"`
	Email         string   `json:"email" validate:"required,email"`
	Phone         *string  `json:"phone,omitempty"`
	CargoType     string   `json:"cargo_type" validate:"required"`
	Origin        string   `json:"origin" validate:"required"`
	Destination   string   `json:"destination" validate:"required"`
	WeightKg      float64  `json:"weight_kg" validate:"required,gt=0"`
	VolumeCbm     *float64 `json:"volume_cbm,omitempty"`
	TransportMode string   `json:"transport_mode" validate:"required,oneof=sea air land"`
	Notes         *string  `json:"notes,omitempty"`
}

type QuoteQuotationInput struct {
	QuotedPrice float64 `json:"quoted_price" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	Notes       *string `json:"notes,omitempty"`
}

type QuotationStatus string

const (
	QuotationPending  QuotationStatus = "pending"
	QuotationQuoted   QuotationStatus = "quoted"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationRejected QuotationStatus = "rejected"
)

func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationPending, QuotationQuoted, QuotationAccepted, QuotationRejected:
		return true
	default:
		return false
	}
}

type TransportMode string

const (
	ModeSea  TransportMode = "sea"
	ModeAir  TransportMode = "air"
	ModeLand TransportMode = "land"
)
