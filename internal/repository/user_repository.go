package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	AssignRole(ctx context.Context, userID uuid.UUID, role string) error
	ListByRole(ctx context.Context, role string) ([]domain.User, error)
	GetAllUsers(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error)
	SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	GetUserByResetToken(ctx context.Context, token string) (*domain.User, error)
	ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error
	SetEmailVerificationToken(ctx context.Context, userID uuid.UUID, token string, sentAt time.Time) error
	GetUserByEmailVerificationToken(ctx context.Context, token string) (*domain.User, error)
	VerifyEmail(ctx context.Context, userID uuid.UUID) error
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, full_name, phone, company, role, is_active, is_email_verified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FullName,
		user.Phone, user.Company, user.Role, user.IsActive, user.IsEmailVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET email = :email, password_hash = :password_hash, full_name = :full_name,
			phone = :phone, company = :company, role = :role, updated_at = NOW()
		WHERE id = :id AND deleted_at IS NULL`

	_, err := r.db.NamedExecContext(ctx, query, user)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE users SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND deleted_at IS NULL)`
	err := r.db.GetContext(ctx, &exists, query, email)
	return exists, err
}

func (r *userRepository) AssignRole(ctx context.Context, userID uuid.UUID, role string) error {
	query := `
		UPDATE users
		SET role = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	var updatedAt time.Time
	err := r.db.QueryRowxContext(ctx, query, userID, role).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("user not found")
	}
	return err
}

func (r *userRepository) ListByRole(ctx context.Context, role string) ([]domain.User, error) {
	var users []domain.User
	query := `SELECT * FROM users WHERE role = $1 AND deleted_at IS NULL ORDER BY full_name`
	err := r.db.SelectContext(ctx, &users, query, role)
	return users, err
}

func (r *userRepository) GetAllUsers(ctx context.Context, params domain.PaginationParams) ([]domain.User, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users WHERE deleted_at IS NULL`); err != nil {
		return nil, 0, err
	}

	var users []domain.User
	query := `
		SELECT * FROM users
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &users, query, params.PageSize, params.Offset())
	return users, total, err
}

func (r *userRepository) SetPasswordResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	query := `
		UPDATE users
		SET password_reset_token = $2, password_reset_expires_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, token, expiresAt)
	return err
}

func (r *userRepository) GetUserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE password_reset_token = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ClearPasswordResetToken(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET password_reset_token = NULL, password_reset_expires_at = NULL, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}

func (r *userRepository) SetEmailVerificationToken(ctx context.Context, userID uuid.UUID, token string, sentAt time.Time) error {
	query := `
		UPDATE users
		SET email_verification_token = $2, email_verification_sent_at = $3, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.db.ExecContext(ctx, query, userID, token, sentAt)
	return err
}

func (r *userRepository) GetUserByEmailVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email_verification_token = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &user, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) VerifyEmail(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE users
		SET is_email_verified = true, email_verification_token = NULL, email_verification_sent_at = NULL, updated_at = NOW()
		WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, userID)
	return err
}
