package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is a booked shipment, usually created from an accepted quotation.
// AssignedAgentID is nil until an agent picks it up.
type Order struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Reference       string     `json:"reference" db:"reference"`
	CustomerID      uuid.UUID  `json:"customer_id" db:"customer_id"`
	QuotationID     *uuid.UUID `json:"quotation_id,omitempty" db:"quotation_id"`
	AssignedAgentID *uuid.UUID `json:"assigned_agent_id,omitempty" db:"assigned_agent_id"`
	CargoType       *string    `json:"cargo_type,omitempty" db:"cargo_type"`
	Origin          *string    `json:"origin,omitempty" db:"origin"`
	Destination     *string    `json:"destination,omitempty" db:"destination"`
	Status          *string    `json:"status,omitempty" db:"status"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateOrderInput struct {
	QuotationID *uuid.UUID `json:"quotation_id,omitempty"`
	CargoType   *string    `json:"cargo_type,omitempty"`
	Origin      *string    `json:"origin,omitempty"`
	Destination *string    `json:"destination,omitempty"`
}

type UpdateOrderInput struct {
	AssignedAgentID *uuid.UUID `json:"assigned_agent_id,omitempty"`
	Status          *string    `json:"status,omitempty" validate:"omitempty,oneof=new confirmed in_transit delivered cancelled"`
}

type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderConfirmed OrderStatus = "confirmed"
	OrderInTransit OrderStatus = "in_transit"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)
