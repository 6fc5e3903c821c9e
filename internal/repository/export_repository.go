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

type ExportRequestRepository interface {
	Create(ctx context.Context, req *domain.ExportRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRequest, error)
	Update(ctx context.Context, req *domain.ExportRequest) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.ExportRequest, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.ExportRequest, int64, error)
	ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.ExportRequest, error)
}

type exportRequestRepository struct {
	db *sqlx.DB
}

func NewExportRequestRepository(db *sqlx.DB) ExportRequestRepository {
	return &exportRequestRepository{db: db}
}

func (r *exportRequestRepository) Create(ctx context.Context, req *domain.ExportRequest) error {
	query := `
		INSERT INTO export_requests (id, customer_id, product_name, quantity, unit, origin, destination, incoterm, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		req.ID, req.CustomerID, req.ProductName, req.Quantity, req.Unit,
		req.Origin, req.Destination, req.Incoterm, req.Status,
	).Scan(&req.CreatedAt, &req.UpdatedAt)
}

func (r *exportRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRequest, error) {
	var req domain.ExportRequest
	query := `SELECT * FROM export_requests WHERE id = $1`

	err := r.db.GetContext(ctx, &req, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *exportRequestRepository) Update(ctx context.Context, req *domain.ExportRequest) error {
	query := `
		UPDATE export_requests
		SET origin = :origin, destination = :destination, incoterm = :incoterm,
			status = :status, handled_by = :handled_by, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, req)
	return err
}

func (r *exportRequestRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.ExportRequest, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM export_requests`); err != nil {
		return nil, 0, err
	}

	var requests []domain.ExportRequest
	query := `
		SELECT * FROM export_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &requests, query, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *exportRequestRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.ExportRequest, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM export_requests WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	var requests []domain.ExportRequest
	query := `
		SELECT * FROM export_requests
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &requests, query, customerID, params.PageSize, params.Offset())
	return requests, total, err
}

func (r *exportRequestRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.ExportRequest, error) {
	var requests []domain.ExportRequest
	query := `
		SELECT * FROM export_requests
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &requests, query, after, limit)
	return requests, err
}
