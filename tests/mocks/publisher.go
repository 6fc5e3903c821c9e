package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cargobridge/internal/realtime"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) Publish(ctx context.Context, evt realtime.Event) {
	m.Called(ctx, evt)
}
