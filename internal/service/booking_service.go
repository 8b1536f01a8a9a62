package service

import (
	"concert-booking/internal/metrics"
	"concert-booking/internal/model"
	"concert-booking/internal/notify"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"context"
	"errors"

	"go.uber.org/zap"
)

type BookingService interface {
	// 預訂座位，成功後依最新售出比例通知訂閱者
	MakeBooking(ctx context.Context, userID int64, req model.CreateBookingRequest) (*model.Booking, error)
	GetBooking(ctx context.Context, userID int64, id int64) (*model.Booking, error)
	ListBookings(ctx context.Context, userID int64) ([]*model.Booking, error)
}

type BookingServiceImpl struct {
	engine     SeatBookingEngine
	accountant AvailabilityAccountant
	hub        notify.NotificationHub
	concerts   repository.ConcertRepository
	bookings   repository.BookingRepository
}

func NewBookingService(
	engine SeatBookingEngine,
	accountant AvailabilityAccountant,
	hub notify.NotificationHub,
	concertRepository repository.ConcertRepository,
	bookingRepository repository.BookingRepository,
) BookingService {
	return &BookingServiceImpl{
		engine:     engine,
		accountant: accountant,
		hub:        hub,
		concerts:   concertRepository,
		bookings:   bookingRepository,
	}
}

func (s *BookingServiceImpl) MakeBooking(ctx context.Context, userID int64, req model.CreateBookingRequest) (*model.Booking, error) {
	key := keyOf(req.ConcertID, req.Date)

	ok, err := performanceExists(ctx, s.concerts, key)
	if err != nil {
		metrics.BookingRequests.WithLabelValues(metrics.ResultError).Inc()
		return nil, err
	}
	if !ok {
		metrics.BookingRequests.WithLabelValues(metrics.ResultInvalid).Inc()
		return nil, apperrors.ErrInvalidRequest
	}

	booking, err := s.engine.Book(ctx, userID, key, req.SeatLabels)
	if err != nil {
		metrics.BookingRequests.WithLabelValues(resultOf(err)).Inc()
		return nil, err
	}
	metrics.BookingRequests.WithLabelValues(metrics.ResultSuccess).Inc()

	// 預訂已提交：之後的步驟失敗也不能回滾，客戶端斷線也要繼續通知
	notifyCtx := context.WithoutCancel(ctx)
	available, total, err := s.accountant.RatioAfter(notifyCtx, key.Date)
	if err != nil {
		logger.WithComponent("service").Warn("skip sellout notification",
			zap.String("performance", key.String()),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err),
		)
		return booking, nil
	}

	s.hub.NotifyAll(notifyCtx, key, available, total)

	return booking, nil
}

func (s *BookingServiceImpl) GetBooking(ctx context.Context, userID int64, id int64) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking.UserID != userID {
		return nil, apperrors.ErrBookingForbidden
	}
	return booking, nil
}

func (s *BookingServiceImpl) ListBookings(ctx context.Context, userID int64) ([]*model.Booking, error) {
	return s.bookings.FindByUserID(ctx, userID)
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return metrics.ResultInvalid
	case errors.Is(err, apperrors.ErrSeatsUnavailable):
		return metrics.ResultUnavailable
	case errors.Is(err, apperrors.ErrConflict):
		return metrics.ResultConflict
	default:
		return metrics.ResultError
	}
}
