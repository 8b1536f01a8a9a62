package queue

import (
	"concert-booking/internal/model"
	apperrors "concert-booking/pkg/app_errors"
	"context"
	"sync"
)

// Delivery 一筆待投遞的售罄通知
type Delivery struct {
	Notification model.Notification
	Handle       model.CompletionHandle
}

type NotificationQueue interface {
	// 發送通知到隊列，不會阻塞；隊列滿回傳 ErrQueueFull
	Publish(ctx context.Context, d Delivery) error
	// 訂閱通知隊列，Close 之後 channel 會在剩餘訊息取完後關閉
	Subscribe(ctx context.Context) (<-chan Delivery, error)
	// 關閉隊列，之後的 Publish 回傳 ErrQueueClosed
	Close()
	Len() int
}

type NotificationQueueImpl struct {
	// 使用 Go channel 作為進程內的投遞隊列
	ch     chan Delivery
	mu     sync.RWMutex
	closed bool
}

func NewNotificationQueue(bufferSize int) NotificationQueue {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &NotificationQueueImpl{
		ch: make(chan Delivery, bufferSize),
	}
}

func (q *NotificationQueueImpl) Publish(ctx context.Context, d Delivery) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return apperrors.ErrQueueClosed
	}

	select {
	case q.ch <- d:
		return nil
	default:
		return apperrors.ErrQueueFull
	}
}

func (q *NotificationQueueImpl) Subscribe(ctx context.Context) (<-chan Delivery, error) {
	return q.ch, nil
}

func (q *NotificationQueueImpl) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.ch)
}

func (q *NotificationQueueImpl) Len() int {
	return len(q.ch)
}
