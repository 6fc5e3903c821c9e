package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type CurrencyTransferRepository struct {
	mock.Mock
}

func (m *CurrencyTransferRepository) Create(ctx context.Context, t *domain.CurrencyTransfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *CurrencyTransferRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CurrencyTransfer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyTransfer), args.Error(1)
}

func (m *CurrencyTransferRepository) Update(ctx context.Context, t *domain.CurrencyTransfer) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *CurrencyTransferRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.CurrencyTransfer), args.Get(1).(int64), args.Error(2)
}

func (m *CurrencyTransferRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.CurrencyTransfer, int64, error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).([]domain.CurrencyTransfer), args.Get(1).(int64), args.Error(2)
}

func (m *CurrencyTransferRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.CurrencyTransfer, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]domain.CurrencyTransfer), args.Error(1)
}
