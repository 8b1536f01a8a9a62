package mocks

import (
	"concert-booking/internal/model"
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type SubscriptionServiceMock struct {
	mock.Mock
}

func NewSubscriptionServiceMock() *SubscriptionServiceMock {
	return &SubscriptionServiceMock{}
}

func (m *SubscriptionServiceMock) Subscribe(ctx context.Context, req model.SubscribeRequest, handle model.CompletionHandle) (uuid.UUID, error) {
	args := m.Called(ctx, req, handle)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *SubscriptionServiceMock) Unsubscribe(id uuid.UUID) bool {
	args := m.Called(id)
	return args.Bool(0)
}
