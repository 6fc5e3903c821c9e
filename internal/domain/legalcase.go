package domain

import (
	"time"

	"github.com/google/uuid"
)

type LegalCase struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	CustomerID       uuid.UUID  `json:"customer_id" db:"customer_id"`
	AssignedLawyerID *uuid.UUID `json:"assigned_lawyer_id,omitempty" db:"assigned_lawyer_id"`
	Subject          string     `json:"subject" db:"subject"`
	Description      *string    `json:"description,omitempty" db:"description"`
	CaseType         *string    `json:"case_type,omitempty" db:"case_type"`
	Status           *string    `json:"status,omitempty" db:"status"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type CreateLegalCaseInput struct {
	Subject     string  `json:"subject" validate:"required,min=3"`
	Description *string `json:"description,omitempty"`
	CaseType    *string `json:"case_type,omitempty" validate:"omitempty,oneof=customs contract insurance dispute other"`
}

type UpdateLegalCaseInput struct {
	AssignedLawyerID *uuid.UUID `json:"assigned_lawyer_id,omitempty"`
	Status           *string    `json:"status,omitempty" validate:"omitempty,oneof=open in_progress resolved closed"`
	Description      *string    `json:"description,omitempty"`
}
