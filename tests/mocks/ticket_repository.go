package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type TicketRepository struct {
	mock.Mock
}

func (m *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *TicketRepository) SetStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *TicketRepository) List(ctx context.Context, params domain.PaginationParams) ([]domain.Ticket, int64, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]domain.Ticket), args.Get(1).(int64), args.Error(2)
}

func (m *TicketRepository) ListByUser(ctx context.Context, userID uuid.UUID, params domain.PaginationParams) ([]domain.Ticket, int64, error) {
	args := m.Called(ctx, userID, params)
	return args.Get(0).([]domain.Ticket), args.Get(1).(int64), args.Error(2)
}

func (m *TicketRepository) CreateReply(ctx context.Context, reply *domain.TicketReply) error {
	args := m.Called(ctx, reply)
	return args.Error(0)
}

func (m *TicketRepository) ListReplies(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketReply, error) {
	args := m.Called(ctx, ticketID)
	return args.Get(0).([]domain.TicketReply), args.Error(1)
}
