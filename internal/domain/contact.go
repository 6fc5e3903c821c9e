package domain

import (
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Email     string     `json:"email" db:"email"`
	Subject   *string    `json:"subject,omitempty" db:"subject"`
	Body      string     `json:"body" db:"body"`
	Handled   bool       `json:"handled" db:"handled"`
	HandledBy *uuid.UUID `json:"handled_by,omitempty" db:"handled_by"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

type CreateContactMessageInput struct {
	Name    string  `json:"name" validate:"required,min=2"`
	Email   string  `json:"email" validate:"required,email"`
	Subject *string `json:"subject,omitempty"`
	Body    string  `json:"body" validate:"required"`
}
