package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExportRequest is a customer's request to ship goods abroad. Origin and
// destination are optional at intake; agents fill them in during review.
type ExportRequest struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CustomerID  uuid.UUID  `json:"customer_id" db:"customer_id"`
	ProductName string     `json:"product_name" db:"product_name"`
	Quantity    float64    `json:"quantity" db:"quantity"`
	Unit        string     `json:"unit" db:"unit"`
	Origin      *string    `json:"origin,omitempty" db:"origin"`
	Destination *string    `json:"destination,omitempty" db:"destination"`
	Incoterm    *string    `json:"incoterm,omitempty" db:"incoterm"`
	Status      *string    `json:"status,omitempty" db:"status"`
	HandledBy   *uuid.UUID `json:"handled_by,omitempty" db:"handled_by"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateExportRequestInput struct {
	ProductName string  `json:"product_name" validate:"required"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	Unit        string  `json:"unit" validate:"required"`
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Incoterm    *string `json:"incoterm,omitempty"`
}

type UpdateExportRequestInput struct {
	Origin      *string `json:"origin,omitempty"`
	Destination *string `json:"destination,omitempty"`
	Incoterm    *string `json:"incoterm,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=submitted in_review approved rejected shipped"`
}
