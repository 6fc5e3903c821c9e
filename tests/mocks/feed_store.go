package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"cargobridge/internal/domain"
)

type FeedStore struct {
	mock.Mock
}

func (m *FeedStore) Load(ctx context.Context, userID uuid.UUID) (domain.FeedState, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.FeedState), args.Error(1)
}

func (m *FeedStore) Save(ctx context.Context, userID uuid.UUID, state domain.FeedState) error {
	args := m.Called(ctx, userID, state)
	return args.Error(0)
}
