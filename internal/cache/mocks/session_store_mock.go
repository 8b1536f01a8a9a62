package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SessionStoreMock cache.SessionStore 的 mock
type SessionStoreMock struct {
	mock.Mock
}

func NewSessionStoreMock() *SessionStoreMock {
	return &SessionStoreMock{}
}

func (m *SessionStoreMock) Create(ctx context.Context, userID int64) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *SessionStoreMock) Lookup(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}
