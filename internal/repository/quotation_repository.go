package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"cargobridge/internal/domain"
)

type QuotationRepository interface {
	Create(ctx context.Context, q *domain.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error)
	Update(ctx context.Context, q *domain.Quotation) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Quotation, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Quotation, int64, error)
}

type quotationRepository struct {
	db *sqlx.DB
}

func NewQuotationRepository(db *sqlx.DB) QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, q *domain.Quotation) error {
	query := `
		INSERT INTO quotations (id, customer_id, full_name, email, phone, cargo_type, origin, destination,
			weight_kg, volume_cbm, transport_mode, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		q.ID, q.CustomerID, q.FullName, q.Email, q.Phone, q.CargoType, q.Origin, q.Destination,
		q.WeightKg, q.VolumeCbm, q.TransportMode, q.Status, q.Notes,
	).Scan(&q.CreatedAt, &q.UpdatedAt)
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	var q domain.Quotation
	query := `SELECT * FROM quotations WHERE id = $1`

	err := r.db.GetContext(ctx, &q, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quotationRepository) Update(ctx context.Context, q *domain.Quotation) error {
	query := `
		UPDATE quotations
		SET status = :status, quoted_price = :quoted_price, currency = :currency,
			notes = :notes, quoted_by = :quoted_by, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, q)
	return err
}

func (r *quotationRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Quotation, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quotations`); err != nil {
		return nil, 0, err
	}

	var quotations []domain.Quotation
	query := `
		SELECT * FROM quotations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &quotations, query, params.PageSize, params.Offset())
	return quotations, total, err
}

func (r *quotationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Quotation, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM quotations WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	var quotations []domain.Quotation
	query := `
		SELECT * FROM quotations
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &quotations, query, customerID, params.PageSize, params.Offset())
	return quotations, total, err
}
