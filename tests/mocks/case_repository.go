package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type LegalCaseRepository struct {
	mock.Mock
}

func (m *LegalCaseRepository) Create(ctx context.Context, lc *domain.LegalCase) error {
	args := m.Called(ctx, lc)
	return args.Error(0)
}

func (m *LegalCaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.LegalCase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LegalCase), args.Error(1)
}

func (m *LegalCaseRepository) Update(ctx context.Context, lc *domain.LegalCase) error {
	args := m.Called(ctx, lc)
	return args.Error(0)
}

func (m *LegalCaseRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.LegalCase), args.Get(1).(int64), args.Error(2)
}

func (m *LegalCaseRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	args := m.Called(ctx, customerID, params)
	return args.Get(0).([]domain.LegalCase), args.Get(1).(int64), args.Error(2)
}

func (m *LegalCaseRepository) ListByLawyer(ctx context.Context, lawyerID uuid.UUID, params domain.PaginationParams) ([]domain.LegalCase, int64, error) {
	args := m.Called(ctx, lawyerID, params)
	return args.Get(0).([]domain.LegalCase), args.Get(1).(int64), args.Error(2)
}

func (m *LegalCaseRepository) ListCreatedAfter(ctx context.Context, after time.Time, limit int) ([]domain.LegalCase, error) {
	args := m.Called(ctx, after, limit)
	return args.Get(0).([]domain.LegalCase), args.Error(1)
}
