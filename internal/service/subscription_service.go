package service

import (
	"concert-booking/internal/model"
	"concert-booking/internal/notify"
	"concert-booking/internal/repository"
	apperrors "concert-booking/pkg/app_errors"
	"context"

	"github.com/google/uuid"
)

type SubscriptionService interface {
	// 訂閱場次售出比例，達到門檻時經由 handle 回覆一次
	Subscribe(ctx context.Context, req model.SubscribeRequest, handle model.CompletionHandle) (uuid.UUID, error)
	// 客戶端離開時取消訂閱
	Unsubscribe(id uuid.UUID) bool
}

type SubscriptionServiceImpl struct {
	hub      notify.NotificationHub
	concerts repository.ConcertRepository
}

func NewSubscriptionService(hub notify.NotificationHub, concertRepository repository.ConcertRepository) SubscriptionService {
	return &SubscriptionServiceImpl{
		hub:      hub,
		concerts: concertRepository,
	}
}

func (s *SubscriptionServiceImpl) Subscribe(ctx context.Context, req model.SubscribeRequest, handle model.CompletionHandle) (uuid.UUID, error) {
	if req.PercentageBooked < 0 || req.PercentageBooked > 100 {
		return uuid.Nil, apperrors.ErrInvalidRequest
	}

	key := keyOf(req.ConcertID, req.Date)
	ok, err := performanceExists(ctx, s.concerts, key)
	if err != nil {
		return uuid.Nil, err
	}
	if !ok {
		return uuid.Nil, apperrors.ErrInvalidPerformance
	}

	return s.hub.Subscribe(key, req.PercentageBooked, handle)
}

func (s *SubscriptionServiceImpl) Unsubscribe(id uuid.UUID) bool {
	return s.hub.Unsubscribe(id)
}
