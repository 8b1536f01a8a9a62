package service

import (
	"concert-booking/internal/model"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"errors"
	"time"
)

// performanceExists 確認演唱會有該場次
func performanceExists(ctx context.Context, concerts repository.ConcertRepository, key model.PerformanceKey) (bool, error) {
	dates, err := concerts.ListDates(ctx, key.ConcertID)
	if errors.Is(err, apperrors.ErrConcertNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	for _, d := range dates {
		if d.Equal(key.Date) {
			return true, nil
		}
	}
	return false, nil
}

// keyOf 由請求的 concert 與日期組成場次 key
func keyOf(concertID int64, date time.Time) model.PerformanceKey {
	return model.NewPerformanceKey(concertID, date)
}
