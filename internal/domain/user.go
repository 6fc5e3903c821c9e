package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                      uuid.UUID  `json:"id" db:"id"`
	Email                   string     `json:"email" db:"email"`
	PasswordHash            string     `json:"-" db:"password_hash"`
	FullName                string     `json:"full_name" db:"full_name"`
	Phone                   *string    `json:"phone,omitempty" db:"phone"`
	Company                 *string    `json:"company,omitempty" db:"company"`
	Role                    string     `json:"role" db:"role"`
	IsActive                bool       `json:"is_active" db:"is_active"`
	IsEmailVerified         bool       `json:"is_email_verified" db:"is_email_verified"`
	EmailVerificationToken  *string    `json:"-" db:"email_verification_token"`
	EmailVerificationSentAt *time.Time `json:"-" db:"email_verification_sent_at"`
	PasswordResetToken      *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt  *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt               time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt               *time.Time `json:"-" db:"deleted_at"`
}

type CreateUserInput struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	FullName string  `json:"full_name" validate:"required,min=2"`
	Phone    *string `json:"phone,omitempty"`
	Company  *string `json:"company,omitempty"`
	Role     string  `json:"role" validate:"omitempty,oneof=customer agent lawyer admin"`
}

type UpdateUserInput struct {
	FullName *string  `json:"full_name,omitempty" validate:"omitempty,min=2"`
	Email    *string  `json:"email,omitempty" validate:"omitempty,email"`
	Password *string  `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone    **string `json:"phone,omitempty"`
	Company  **string `json:"company,omitempty"`
	Role     *string  `json:"role,omitempty" validate:"omitempty,oneof=customer agent lawyer admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AssignRoleInput struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required,oneof=customer agent lawyer admin"`
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAgent    UserRole = "agent"
	RoleLawyer   UserRole = "lawyer"
	RoleAdmin    UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleCustomer, RoleAgent, RoleLawyer, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasRole implements the platform's flat role model: admin can act as any
// role, everyone else only as their own. Agent, lawyer and customer are
// disjoint dashboards.
func (u *User) HasRole(requiredRole string) bool {
	if u.Role == string(RoleAdmin) {
		return true
	}
	return u.Role == requiredRole
}
