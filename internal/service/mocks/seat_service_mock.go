package mocks

import (
	"concert-booking/internal/model"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type SeatServiceMock struct {
	mock.Mock
}

func NewSeatServiceMock() *SeatServiceMock {
	return &SeatServiceMock{}
}

func (m *SeatServiceMock) ListSeats(ctx context.Context, date time.Time, status string) ([]*model.Seat, error) {
	args := m.Called(ctx, date, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Seat), args.Error(1)
}
