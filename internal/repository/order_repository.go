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

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	List(ctx context.Context, params domain.PaginationParams) ([]domain.Order, int64, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error)
	ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.Order, error)
}

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	query := `
		INSERT INTO orders (id, reference, customer_id, quotation_id, cargo_type, origin, destination, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	return r.db.QueryRowxContext(ctx, query,
		o.ID, o.Reference, o.CustomerID, o.QuotationID, o.CargoType, o.Origin, o.Destination, o.Status,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	query := `SELECT * FROM orders WHERE id = $1`

	err := r.db.GetContext(ctx, &o, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	query := `
		UPDATE orders
		SET assigned_agent_id = :assigned_agent_id, status = :status, updated_at = NOW()
		WHERE id = :id`

	_, err := r.db.NamedExecContext(ctx, query, o)
	return err
}

func (r *orderRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Order, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders`); err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	query := `
		SELECT * FROM orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	err := r.db.SelectContext(ctx, &orders, query, params.PageSize, params.Offset())
	return orders, total, err
}

func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE customer_id = $1`, customerID); err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	query := `
		SELECT * FROM orders
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &orders, query, customerID, params.PageSize, params.Offset())
	return orders, total, err
}

func (r *orderRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error) {
	params.Validate()

	var total int64
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM orders WHERE assigned_agent_id = $1`, agentID); err != nil {
		return nil, 0, err
	}

	var orders []domain.Order
	query := `
		SELECT * FROM orders
		WHERE assigned_agent_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	err := r.db.SelectContext(ctx, &orders, query, agentID, params.PageSize, params.Offset())
	return orders, total, err
}

func (r *orderRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	query := `
		SELECT * FROM orders
		WHERE created_at > $1
		ORDER BY created_at DESC
		LIMIT $2`
	err := r.db.SelectContext(ctx, &orders, query, after, limit)
	return orders, err
}
