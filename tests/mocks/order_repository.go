package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderRepository) Update(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *OrderRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Order, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) ListByAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) ([]domain.Order, int64, error) {
	args := m.Called(ctx, agentID, params)
	return args.Get(0).([]domain.Order), args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.Order, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]domain.Order), args.Error(1)
}
