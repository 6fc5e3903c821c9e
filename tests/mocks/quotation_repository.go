package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type QuotationRepository struct {
	mock.Mock
}

func (m *QuotationRepository) Create(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Quotation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quotation), args.Error(1)
}

func (m *QuotationRepository) Update(ctx context.Context, q *domain.Quotation) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QuotationRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Quotation, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Quotation), args.Get(1).(int64), args.Error(2)
}

func (m *QuotationRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.Quotation, int64, error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).([]domain.Quotation), args.Get(1).(int64), args.Error(2)
}
