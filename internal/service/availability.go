package service

import (
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"fmt"
	"time"
)

// AvailabilityAccountant 計算場次目前的可用座位比例
type AvailabilityAccountant interface {
	// 讀取失敗回傳 ErrTransientRead，不影響已完成的預訂
	RatioAfter(ctx context.Context, date time.Time) (available int, total int, err error)
}

type AvailabilityAccountantImpl struct {
	seats repository.SeatRepository
}

func NewAvailabilityAccountant(seats repository.SeatRepository) AvailabilityAccountant {
	return &AvailabilityAccountantImpl{seats: seats}
}

func (a *AvailabilityAccountantImpl) RatioAfter(ctx context.Context, date time.Time) (int, int, error) {
	available, total, err := a.seats.CountAvailability(ctx, date)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", apperrors.ErrTransientRead, err)
	}
	return available, total, nil
}
