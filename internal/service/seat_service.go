package service

import (
	"concert-booking/internal/model"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"time"
)

type SeatService interface {
	// 列出某場次的座位，status 為 Any / Booked / Unbooked
	ListSeats(ctx context.Context, date time.Time, status string) ([]*model.Seat, error)
}

type SeatServiceImpl struct {
	seats repository.SeatRepository
}

func NewSeatService(seatRepository repository.SeatRepository) SeatService {
	return &SeatServiceImpl{seats: seatRepository}
}

func (s *SeatServiceImpl) ListSeats(ctx context.Context, date time.Time, status string) ([]*model.Seat, error) {
	st, ok := model.ParseSeatStatus(status)
	if !ok || date.IsZero() {
		return nil, apperrors.ErrInvalidRequest
	}
	return s.seats.FindByDate(ctx, date.UTC(), st)
}
