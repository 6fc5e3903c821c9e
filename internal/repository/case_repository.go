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

type LegalCaseRepository interface {
	Create(ctx context.Context, lc *domain.LegalCase) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalCase, error)
	Update(ctx context.Context, lc *domain.LegalCase) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.LegalCase, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error)
	ListByLawyer(ctx context.Context, lawyerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error)
	ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.LegalCase, error)
}

type legalCaseRepository struct {
	db *sqlx.DB
}

func NewLegalCaseRepository(db *sqlx.DB) LegalCaseRepository {
	return &legalCaseRepository{db: db}
}

func (r *legalCaseRepository) Create(ctx context.Context, lc *domain.LegalCase) error {
	query := `
		INSERT INTO cases (id, customer_id, subject, description, case_type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		lc.ID, lc.CustomerID, lc.Subject, lc.Description, lc.CaseType, lc.Status,
	).Scan(&lc.CreatedAt, &lc.UpdatedAt)
}

func (r *legalCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalCase, error) {
	var lc domain.LegalCase
	query := `SELECT * FROM cases WHERE id = $1`

	err := r.db.GetContext(ctx, &lc, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lc, nil
}

func (r *legalCaseRepository) Update(ctx context.Context, lc *domain.LegalCase) error {
	query := `
		UPDATE cases
		SET assigned_lawyer_id = :assigned_lawyer_id, description = :description,
			status = :status, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, lc)
	return err
}

func (r *legalCaseRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cases`); err != nil {
		return nil, 0, err
	}

	var cases []domain.LegalCase
	query := `
		SELECT * FROM cases
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &cases, query, params.PageSize, params.Offset())
	return cases, total, err
}

func (r *legalCaseRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cases WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	var cases []domain.LegalCase
	query := `
		SELECT * FROM cases
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &cases, query, customerID, params.PageSize, params.Offset())
	return cases, total, err
}

func (r *legalCaseRepository) ListByLawyer(ctx context.Context, lawyerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cases WHERE assigned_lawyer_id = $1`, lawyerID); err != nil {
		return nil, 0, err
	}

	var cases []domain.LegalCase
	query := `
		SELECT * FROM cases
		WHERE assigned_lawyer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &cases, query, lawyerID, params.PageSize, params.Offset())
	return cases, total, err
}

func (r *legalCaseRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.LegalCase, error) {
	var cases []domain.LegalCase
	query := `
		SELECT * FROM cases
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &cases, query, after, limit)
	return cases, err
}
