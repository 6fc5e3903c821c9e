package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContentPage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Published bool      `json:"published" db:"published"`
	UpdatedBy uuid.UUID `json:"updated_by" db:"updated_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type UpsertContentPageInput struct {
	Slug      string `json:"slug" validate:"required,min=1"`
	Title     string `json:"title" validate:"required"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}
