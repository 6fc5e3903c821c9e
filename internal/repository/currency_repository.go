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

type CurrencyTransferRepository interface {
	Create(ctx context.Context, t *domain.CurrencyTransfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyTransfer, error)
	Update(ctx context.Context, t *domain.CurrencyTransfer) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error)
	ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.CurrencyTransfer, error)
}

type currencyTransferRepository struct {
	db *sqlx.DB
}

func NewCurrencyTransferRepository(db *sqlx.DB) CurrencyTransferRepository {
	return &currencyTransferRepository{db: db}
}

func (r *currencyTransferRepository) Create(ctx context.Context, t *domain.CurrencyTransfer) error {
	query := `
		INSERT INTO currency_transfer_requests (id, customer_id, from_currency, to_currency, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		t.ID, t.CustomerID, t.FromCurrency, t.ToCurrency, t.Amount, t.Status,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

func (r *currencyTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyTransfer, error) {
	var t domain.CurrencyTransfer
	query := `SELECT * FROM currency_transfer_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &t, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *currencyTransferRepository) Update(ctx context.Context, t *domain.CurrencyTransfer) error {
	query := `
		UPDATE currency_transfer_requests
		SET rate = :rate, status = :status, handled_by = :handled_by, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, t)
	return err
}

func (r *currencyTransferRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM currency_transfer_requests`); err != nil {
		return nil, 0, err
	}

	var transfers []domain.CurrencyTransfer
	query := `
		SELECT * FROM currency_transfer_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &transfers, query, params.PageSize, params.Offset())
	return transfers, total, err
}

func (r *currencyTransferRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM currency_transfer_requests WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	var transfers []domain.CurrencyTransfer
	query := `
		SELECT * FROM currency_transfer_requests
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &transfers, query, customerID, params.PageSize, params.Offset())
	return transfers, total, err
}

func (r *currencyTransferRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.CurrencyTransfer, error) {
	var transfers []domain.CurrencyTransfer
	query := `
		SELECT * FROM currency_transfer_requests
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &transfers, query, after, limit)
	return transfers, err
}
