package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type ExportRequestRepository struct {
	mock.Mock
}

func (m *ExportRequestRepository) Create(ctx context.Context, req *domain.ExportRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *ExportRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ExportRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExportRequest), args.Error(1)
}

func (m *ExportRequestRepository) Update(ctx context.Context, req *domain.ExportRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *ExportRequestRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.ExportRequest, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.ExportRequest), args.Get(1).(int64), args.Error(2)
}

func (m *ExportRequestRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.ExportRequest, int64, error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).([]domain.ExportRequest), args.Get(1).(int64), args.Error(2)
}

func (m *ExportRequestRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.ExportRequest, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]domain.ExportRequest), args.Error(1)
}
