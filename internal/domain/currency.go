package domain

import (
	"time"

	"github.com/google/uuid"
)

type CurrencyTransfer struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	CustomerID   uuid.UUID  `json:"customer_id" db:"customer_id"`
	FromCurrency string     `json:"from_currency" db:"from_currency"`
	ToCurrency   string     `json:"to_currency" db:"to_currency"`
	Amount       float64    `json:"amount" db:"amount"`
	Rate         *float64   `json:"rate,omitempty" db:"rate"`
	Status       *string    `json:"status,omitempty" db:"status"`
	HandledBy    *uuid.UUID `json:"handled_by,omitempty" db:"handled_by"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateCurrencyTransferInput struct {
	FromCurrency string  `json:"from_currency" validate:"required,len=3"`
	ToCurrency   string  `json:"to_currency" validate:"required,len=3"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

type UpdateCurrencyTransferInput struct {
	Rate   *float64 `json:"rate,omitempty" validate:"omitempty,gt=0"`
	Status *string  `json:"status,omitempty" validate:"omitempty,oneof=requested quoted processing completed cancelled"`
}
