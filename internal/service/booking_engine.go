package service

import (
	"concert-booking/config"
	"concert-booking/internal/metrics"
	"concert-booking/internal/model"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// SeatBookingEngine 以樂觀鎖預訂座位
type SeatBookingEngine interface {
	// 讀取座位 → 檢查可用 → 依版本條件寫入，版本衝突時重試
	Book(ctx context.Context, userID int64, key model.PerformanceKey, labels []string) (*model.Booking, error)
}

type SeatBookingEngineImpl struct {
	seats  repository.SeatRepository
	ledger repository.Ledger
	cfg    config.BookingConfig
}

func NewSeatBookingEngine(seats repository.SeatRepository, ledger repository.Ledger, cfg config.BookingConfig) SeatBookingEngine {
	return &SeatBookingEngineImpl{
		seats:  seats,
		ledger: ledger,
		cfg:    cfg,
	}
}

func (e *SeatBookingEngineImpl) Book(ctx context.Context, userID int64, key model.PerformanceKey, labels []string) (*model.Booking, error) {
	if err := validateLabels(key, labels); err != nil {
		return nil, err
	}

	log := logger.WithComponent("service").With(
		zap.Int64("concert_id", key.ConcertID),
		zap.Time("date", key.Date),
	)

	attempts := 0
	booking, err := backoff.Retry(ctx, func() (*model.Booking, error) {
		attempts++
		booking, err := e.attempt(ctx, userID, key, labels)
		if errors.Is(err, apperrors.ErrVersionConflict) {
			metrics.BookingConflicts.Inc()
			log.Debug("seat version conflict", zap.Int("attempt", attempts))
			return nil, err
		}
		if err != nil {
			// 座位不足或讀取失敗都不重試
			return nil, backoff.Permanent(err)
		}
		return booking, nil
	},
		backoff.WithBackOff(e.newBackOff()),
		backoff.WithMaxTries(e.maxTries()),
	)
	metrics.BookingAttempts.Observe(float64(attempts))

	if errors.Is(err, apperrors.ErrVersionConflict) {
		log.Warn("booking retries exhausted", zap.Int("attempt", attempts))
		return nil, fmt.Errorf("%w: gave up after %d attempts", apperrors.ErrConflict, attempts)
	}
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (e *SeatBookingEngineImpl) attempt(ctx context.Context, userID int64, key model.PerformanceKey, labels []string) (*model.Booking, error) {
	seats, err := e.seats.FindByDateAndLabels(ctx, key.Date, labels)
	if err != nil {
		return nil, fmt.Errorf("read seats: %w", err)
	}

	// 不存在的 label 也算不可用
	if len(seats) < len(labels) {
		return nil, apperrors.ErrSeatsUnavailable
	}

	claims := make([]model.SeatClaim, 0, len(seats))
	booked := make([]*model.Seat, 0, len(seats))
	for _, s := range seats {
		if !s.IsAvailable() {
			return nil, apperrors.ErrSeatsUnavailable
		}
		claims = append(claims, model.SeatClaim{SeatID: s.ID, ExpectedVersion: s.Version})

		seat := *s
		seat.IsBooked = true
		seat.Version = s.Version + 1
		booked = append(booked, &seat)
	}

	draft := &model.Booking{
		UserID:     userID,
		ConcertID:  key.ConcertID,
		Date:       key.Date,
		Seats:      booked,
		TotalPrice: model.TotalOf(booked),
	}

	return e.ledger.ConditionalBookAndPersist(ctx, draft, claims)
}

func (e *SeatBookingEngineImpl) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.cfg.InitialBackoff
	b.MaxInterval = e.cfg.MaxBackoff
	b.RandomizationFactor = e.cfg.Jitter
	b.Multiplier = 2
	if b.InitialInterval <= 0 {
		b.InitialInterval = time.Millisecond
	}
	if b.MaxInterval < b.InitialInterval {
		b.MaxInterval = b.InitialInterval
	}
	return b
}

func (e *SeatBookingEngineImpl) maxTries() uint {
	if e.cfg.MaxAttempts < 1 {
		return 1
	}
	return uint(e.cfg.MaxAttempts)
}

func validateLabels(key model.PerformanceKey, labels []string) error {
	if key.Date.IsZero() || len(labels) == 0 {
		return apperrors.ErrInvalidRequest
	}

	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if strings.TrimSpace(l) == "" {
			return apperrors.ErrInvalidRequest
		}
		if _, dup := seen[l]; dup {
			return apperrors.ErrInvalidRequest
		}
		seen[l] = struct{}{}
	}
	return nil
}
