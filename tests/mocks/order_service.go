package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) Create(ctx context.Context, customerID uuid.UUID, input domain.CreateOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, customerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderService) GetByID(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Order, error) {
	args := m.Called(ctx, user, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderService) Update(ctx context.Context, actor *domain.User, id uuid.UUID, input domain.UpdateOrderInput) (*domain.Order, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *OrderService) List(ctx context.Context, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	args := m.Called(ctx, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Order]), args.Error(1)
}

func (m *OrderService) ListForCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Order]), args.Error(1)
}

func (m *OrderService) ListForAgent(ctx context.Context, agentID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Order], error) {
	args := m.Called(ctx, agentID, params)
	return args.Get(0).(domain.PaginatedResponse[domain.Order]), args.Error(1)
}
