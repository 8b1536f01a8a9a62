package worker

import (
	"concert-booking/internal/metrics"
	"concert-booking/internal/queue"
	"concert-booking/pkg/logger"
	"context"
	"sync"

	"go.uber.org/zap"
)

type NotificationWorker interface {
	// 訂閱通知隊列並開始投遞
	Start(ctx context.Context) error
	// 等待隊列關閉且剩餘通知投遞完成
	Wait()
}

type NotificationWorkerImpl struct {
	queue   queue.NotificationQueue
	workers int
	wg      sync.WaitGroup
}

func NewNotificationWorker(queue queue.NotificationQueue, workers int) NotificationWorker {
	if workers < 1 {
		workers = 1
	}
	return &NotificationWorkerImpl{
		queue:   queue,
		workers: workers,
	}
}

func (w *NotificationWorkerImpl) Start(ctx context.Context) error {
	msgs, err := w.queue.Subscribe(ctx)
	if err != nil {
		return err
	}

	for i := 0; i < w.workers; i++ {
		w.wg.Add(1)
		go func(id int) {
			defer w.wg.Done()
			// 隊列關閉後 range 會把剩下的通知取完才結束
			for d := range msgs {
				w.deliver(id, d)
			}
		}(i)
	}

	return nil
}

func (w *NotificationWorkerImpl) deliver(id int, d queue.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("worker").Error("notification delivery panicked",
				zap.Int("worker", id),
				zap.String("subscription_id", d.Notification.SubscriptionID.String()),
				zap.Any("panic", r),
			)
		}
	}()

	d.Handle.Deliver(d.Notification)
	metrics.NotificationsDelivered.Inc()
}

func (w *NotificationWorkerImpl) Wait() {
	w.wg.Wait()
}
