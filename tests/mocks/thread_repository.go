package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type ThreadRepository struct {
	mock.Mock
}

func (m *ThreadRepository) CreateThread(ctx context.Context, thread *domain.Thread, memberIDs []uuid.UUID) error {
	args := m.Called(ctx, thread, memberIDs)
	return args.Error(0)
}

func (m *ThreadRepository) GetThread(ctx context.Context, id uuid.UUID) (*domain.Thread, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Thread), args.Error(1)
}

func (m *ThreadRepository) GetMembers(ctx context.Context, threadID uuid.UUID) ([]domain.ThreadMember, error) {
	args := m.Called(ctx, threadID)
	return args.Get(0).([]domain.ThreadMember), args.Error(1)
}

func (m *ThreadRepository) IsMember(ctx context.Context, threadID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, threadID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *ThreadRepository) ListThreadsForUser(ctx context.Context, userID uuid.UUID) ([]domain.ThreadOverview, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ThreadOverview), args.Error(1)
}

func (m *ThreadRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *ThreadRepository) ListMessages(ctx context.Context, threadID uuid.UUID, params domain.PaginationParams) ([]domain.Message, int64, error) {
	args := m.Called(ctx, threadID, params)
	return args.Get(0).([]domain.Message), args.Get(1).(int64), args.Error(2)
}

func (m *ThreadRepository) MarkThreadRead(ctx context.Context, threadID, userID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, threadID, userID, at)
	return args.Error(0)
}
