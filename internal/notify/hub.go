package notify

import (
	"concert-booking/internal/metrics"
	"concert-booking/internal/model"
	"concert-booking/internal/queue"
	apperrors "concert-booking/pkg/app_errors"
	"concert-booking/pkg/logger"
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type NotificationHub interface {
	// 註冊訂閱，threshold 為 0~100 的已售百分比
	Subscribe(key model.PerformanceKey, threshold int, handle model.CompletionHandle) (uuid.UUID, error)
	// 取消訂閱，訂閱不存在 (已通知或已取消) 回傳 false
	Unsubscribe(id uuid.UUID) bool
	// 依最新可用座位數通知達到門檻的訂閱，回傳被通知的數量
	NotifyAll(ctx context.Context, key model.PerformanceKey, available, total int) int
	// 某場次仍在等待的訂閱數
	Active(key model.PerformanceKey) int
	// 關閉 hub，取消所有仍在等待的訂閱
	Close()
}

type subscription struct {
	id        uuid.UUID
	key       model.PerformanceKey
	threshold int
	handle    model.CompletionHandle
}

type NotificationHubImpl struct {
	mu sync.Mutex
	// 每個場次依註冊順序排列，同門檻時先註冊的先通知
	subs   map[model.PerformanceKey][]*subscription
	index  map[uuid.UUID]*subscription
	queue  queue.NotificationQueue
	closed bool
}

func NewNotificationHub(q queue.NotificationQueue) NotificationHub {
	return &NotificationHubImpl{
		subs:  make(map[model.PerformanceKey][]*subscription),
		index: make(map[uuid.UUID]*subscription),
		queue: q,
	}
}

// PercentBooked 已售百分比，沿用整數除法先截斷可用比例再以 100 相減
// total <= 0 視為未設定座位，ok 為 false
func PercentBooked(available, total int) (percent int, ok bool) {
	if total <= 0 {
		return 0, false
	}
	return 100 - available*100/total, true
}

func (h *NotificationHubImpl) Subscribe(key model.PerformanceKey, threshold int, handle model.CompletionHandle) (uuid.UUID, error) {
	if handle == nil || threshold < 0 || threshold > 100 {
		return uuid.Nil, apperrors.ErrInvalidRequest
	}

	s := &subscription{
		id:        uuid.New(),
		key:       key,
		threshold: threshold,
		handle:    handle,
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return uuid.Nil, apperrors.ErrHubClosed
	}

	h.subs[key] = append(h.subs[key], s)
	h.index[s.id] = s
	metrics.ActiveSubscriptions.Inc()

	return s.id, nil
}

func (h *NotificationHubImpl) Unsubscribe(id uuid.UUID) bool {
	h.mu.Lock()
	s, ok := h.index[id]
	if !ok {
		h.mu.Unlock()
		return false
	}
	h.removeLocked(s)
	h.mu.Unlock()

	metrics.ActiveSubscriptions.Dec()
	s.handle.Cancel()
	return true
}

// removeLocked 從場次列表與索引移除，保留其他訂閱的順序
func (h *NotificationHubImpl) removeLocked(s *subscription) {
	delete(h.index, s.id)

	list := h.subs[s.key]
	for i, cur := range list {
		if cur != s {
			continue
		}
		copy(list[i:], list[i+1:])
		list[len(list)-1] = nil
		list = list[:len(list)-1]
		break
	}

	if len(list) == 0 {
		delete(h.subs, s.key)
	} else {
		h.subs[s.key] = list
	}
}

func (h *NotificationHubImpl) NotifyAll(ctx context.Context, key model.PerformanceKey, available, total int) int {
	percent, ok := PercentBooked(available, total)
	if !ok {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0
	}

	list := h.subs[key]
	if len(list) == 0 {
		return 0
	}

	remaining := make([]*subscription, 0, len(list))
	due := make([]*subscription, 0)
	for _, s := range list {
		if percent >= s.threshold {
			delete(h.index, s.id)
			due = append(due, s)
		} else {
			remaining = append(remaining, s)
		}
	}

	if len(due) == 0 {
		return 0
	}

	if len(remaining) == 0 {
		delete(h.subs, key)
	} else {
		h.subs[key] = remaining
	}
	metrics.ActiveSubscriptions.Sub(float64(len(due)))

	// 在鎖內交給隊列：Publish 不會阻塞，且 Close 之後不會再有新的投遞
	for _, s := range due {
		h.dispatch(ctx, queue.Delivery{
			Notification: model.Notification{
				SubscriptionID: s.id,
				Key:            key,
				AvailableSeats: available,
			},
			Handle: s.handle,
		})
	}

	logger.WithComponent("hub").Info("sellout threshold reached",
		zap.String("performance", key.String()),
		zap.Int("available", available),
		zap.Int("total", total),
		zap.Int("notified", len(due)),
		zap.Int("remaining", len(remaining)),
	)

	return len(due)
}

func (h *NotificationHubImpl) dispatch(ctx context.Context, d queue.Delivery) {
	err := h.queue.Publish(ctx, d)
	if err == nil {
		return
	}

	if !errors.Is(err, apperrors.ErrQueueFull) {
		logger.WithComponent("hub").Warn("publish notification failed, delivering directly",
			zap.String("subscription_id", d.Notification.SubscriptionID.String()), zap.Error(err))
	}
	// 隊列滿或已關閉時另開 goroutine 投遞，不能讓預訂流程等待
	metrics.QueueFallbacks.Inc()
	go func() {
		d.Handle.Deliver(d.Notification)
		metrics.NotificationsDelivered.Inc()
	}()
}

func (h *NotificationHubImpl) Active(key model.PerformanceKey) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}

func (h *NotificationHubImpl) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	pending := make([]*subscription, 0, len(h.index))
	for _, list := range h.subs {
		for _, s := range list {
			pending = append(pending, s)
		}
	}
	h.subs = make(map[model.PerformanceKey][]*subscription)
	h.index = make(map[uuid.UUID]*subscription)
	h.mu.Unlock()

	metrics.ActiveSubscriptions.Sub(float64(len(pending)))
	for _, s := range pending {
		s.handle.Cancel()
	}

	logger.WithComponent("hub").Info("notification hub closed", zap.Int("cancelled", len(pending)))
}
